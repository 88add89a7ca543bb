package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/mmeshcher/restomanage/internal/model"
	"github.com/mmeshcher/restomanage/internal/rating"
)

// CreateRecipe создаёт новый рецепт.
func (r *PostgresRepository) CreateRecipe(ctx context.Context, rec model.Recipe) error {
	ingredients, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal ingredients: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO recipes (id, user_id, title, description, prep_time, cook_time, servings, difficulty,
		                      ingredients, instructions, tags, cuisine, meal_type, calories, image_url,
		                      rating, rating_count, is_favorite, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`,
		rec.ID, rec.UserID, rec.Title, rec.Description, rec.PrepTime, rec.CookTime, rec.Servings,
		rec.Difficulty, ingredients, rec.Instructions, rec.Tags, rec.Cuisine, rec.MealType,
		rec.Calories, rec.ImageURL, rec.Rating, rec.RatingCount, rec.IsFavorite, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create recipe: %w", err)
	}
	return nil
}

const recipeColumns = `id, user_id, title, description, prep_time, cook_time, servings, difficulty,
	ingredients, instructions, tags, cuisine, meal_type, calories, image_url, rating, rating_count,
	is_favorite, created_at, updated_at`

func scanRecipe(row pgx.Row) (*model.Recipe, error) {
	var (
		rec         model.Recipe
		ingredients []byte
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Title, &rec.Description, &rec.PrepTime, &rec.CookTime,
		&rec.Servings, &rec.Difficulty, &ingredients, &rec.Instructions, &rec.Tags, &rec.Cuisine,
		&rec.MealType, &rec.Calories, &rec.ImageURL, &rec.Rating, &rec.RatingCount,
		&rec.IsFavorite, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("scan recipe: %w", err)
	}

	if len(ingredients) > 0 {
		if err := json.Unmarshal(ingredients, &rec.Ingredients); err != nil {
			return nil, fmt.Errorf("unmarshal ingredients: %w", err)
		}
	}

	return &rec, nil
}

// GetRecipeByID возвращает рецепт с комментариями по идентификатору.
func (r *PostgresRepository) GetRecipeByID(ctx context.Context, id string) (*model.Recipe, error) {
	rec, err := scanRecipe(r.pool.QueryRow(ctx,
		`SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	comments, err := r.loadRecipeComments(ctx, []string{rec.ID})
	if err != nil {
		return nil, err
	}
	rec.Comments = comments[rec.ID]

	return rec, nil
}

// ListRecipes возвращает все рецепты с комментариями в порядке создания.
func (r *PostgresRepository) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+recipeColumns+` FROM recipes ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("select recipes: %w", err)
	}
	defer rows.Close()

	var res []model.Recipe
	for rows.Next() {
		rec, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	if len(res) == 0 {
		return res, nil
	}

	ids := make([]string, 0, len(res))
	for _, rec := range res {
		ids = append(ids, rec.ID)
	}

	comments, err := r.loadRecipeComments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range res {
		res[i].Comments = comments[res[i].ID]
	}

	return res, nil
}

func (r *PostgresRepository) loadRecipeComments(ctx context.Context, recipeIDs []string) (map[string][]model.RecipeComment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT recipe_id, id, user_id, body, rating, created_at
		 FROM recipe_comments
		 WHERE recipe_id = ANY($1)
		 ORDER BY recipe_id, created_at`,
		recipeIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("select recipe comments: %w", err)
	}
	defer rows.Close()

	res := make(map[string][]model.RecipeComment, len(recipeIDs))
	for rows.Next() {
		var (
			recipeID string
			c        model.RecipeComment
		)
		if err := rows.Scan(&recipeID, &c.ID, &c.UserID, &c.Text, &c.Rating, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe comment: %w", err)
		}
		res[recipeID] = append(res[recipeID], c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

// AddRecipeComment добавляет комментарий и, если он содержит оценку,
// пересчитывает бегущий средний рейтинг рецепта под блокировкой строки.
func (r *PostgresRepository) AddRecipeComment(ctx context.Context, recipeID string, c model.RecipeComment) (*model.Recipe, error) {
	err := r.withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		var (
			mean  float64
			count int
		)
		err = tx.QueryRow(ctx,
			`SELECT rating, rating_count FROM recipes WHERE id = $1 FOR UPDATE`,
			recipeID,
		).Scan(&mean, &count)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrRecipeNotFound
			}
			return fmt.Errorf("lock recipe: %w", err)
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO recipe_comments (id, recipe_id, user_id, body, rating, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			c.ID, recipeID, c.UserID, c.Text, c.Rating, c.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}

		if c.Rating != nil {
			mean, count = rating.Apply(mean, count, *c.Rating)
			_, err = tx.Exec(ctx,
				`UPDATE recipes SET rating = $2, rating_count = $3, updated_at = $4 WHERE id = $1`,
				recipeID, mean, count, c.CreatedAt,
			)
		} else {
			_, err = tx.Exec(ctx,
				`UPDATE recipes SET updated_at = $2 WHERE id = $1`,
				recipeID, c.CreatedAt,
			)
		}
		if err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return r.GetRecipeByID(ctx, recipeID)
}
