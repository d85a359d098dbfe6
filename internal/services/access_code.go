package services

import (
	"math/rand"
	"sync"

	"github.com/doniphane/AcadyoquizzV2-deploy/internal/models"
)

const accessCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeChecker reports whether an access code is already persisted.
type CodeChecker interface {
	CodeExists(code string) (bool, error)
}

// AccessCodeGenerator produces 6-character uppercase alphanumeric codes,
// retrying until the candidate is neither persisted nor previously issued by
// this process. The issued set covers the window between generating a code
// and committing the questionnaire that carries it.
type AccessCodeGenerator struct {
	store CodeChecker

	mu     sync.Mutex
	issued map[string]struct{}
}

func NewAccessCodeGenerator(store CodeChecker) *AccessCodeGenerator {
	return &AccessCodeGenerator{
		store:  store,
		issued: make(map[string]struct{}),
	}
}

// Generate returns a unique access code. With a 36^6 keyspace the loop
// terminates on the first or second draw in practice.
func (g *AccessCodeGenerator) Generate() (string, error) {
	for {
		code := randomAccessCode()
		if g.alreadyIssued(code) {
			continue
		}
		exists, err := g.store.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			g.remember(code)
			return code, nil
		}
	}
}

func (g *AccessCodeGenerator) alreadyIssued(code string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.issued[code]
	return ok
}

func (g *AccessCodeGenerator) remember(code string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.issued[code] = struct{}{}
}

func randomAccessCode() string {
	buf := make([]byte, models.AccessCodeLength)
	for i := range buf {
		buf[i] = accessCodeCharset[rand.Intn(len(accessCodeCharset))]
	}
	return string(buf)
}
