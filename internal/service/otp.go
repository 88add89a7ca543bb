package service

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

const otpTTL = 5 * time.Minute

type otpEntry struct {
	code    string
	expires time.Time
}

// otpStore хранит выданные коды подтверждения в памяти процесса.
// Код одноразовый: удаляется при успешной проверке.
type otpStore struct {
	mu    sync.Mutex
	codes map[string]otpEntry
	ttl   time.Duration
}

func newOTPStore(ttl time.Duration) *otpStore {
	return &otpStore{
		codes: make(map[string]otpEntry),
		ttl:   ttl,
	}
}

func (s *otpStore) issue(phone string) string {
	code := fmt.Sprintf("%06d", rand.IntN(1000000))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[phone] = otpEntry{
		code:    code,
		expires: time.Now().Add(s.ttl),
	}

	return code
}

func (s *otpStore) verify(phone, code string) error {
	return s.verifyAt(phone, code, time.Now())
}

func (s *otpStore) verifyAt(phone, code string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.codes[phone]
	if !ok || now.After(entry.expires) {
		return ErrOTPExpired
	}

	if code != entry.code {
		return ErrOTPMismatch
	}

	delete(s.codes, phone)
	return nil
}
