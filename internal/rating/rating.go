// Package rating реализует инкрементальный пересчёт среднего рейтинга.
package rating

// Apply пересчитывает бегущее среднее при добавлении новой оценки.
// Инвариант: mean — арифметическое среднее ровно count оценок.
// Деление выполняется на увеличенный счётчик и потому никогда не на ноль.
func Apply(mean float64, count int, value int) (float64, int) {
	total := mean * float64(count)
	count++
	return (total + float64(value)) / float64(count), count
}
