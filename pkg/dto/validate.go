package dto

import (
	"github.com/dimitrije/workspace-api/internal/apperr"
	"github.com/dimitrije/workspace-api/internal/validators"
)

// checker collects the first failed constraint of a request.
type checker struct {
	msg string
}

func (c *checker) check(ok bool, msg string) {
	if !ok && c.msg == "" {
		c.msg = msg
	}
}

func (c *checker) required(s, msg string) {
	c.check(!validators.IsBlank(s), msg)
}

func (c *checker) maxLen(s string, n int, msg string) {
	c.check(validators.MaxLen(s, n), msg)
}

func (c *checker) optionalMaxLen(s *string, n int, msg string) {
	if s != nil {
		c.maxLen(*s, n, msg)
	}
}

func (c *checker) nonNegative(v float64, msg string) {
	c.check(v >= 0, msg)
}

func (c *checker) hexColor(s, msg string) {
	c.check(s == "" || validators.IsHexColor(s), msg)
}

func (c *checker) err() error {
	if c.msg == "" {
		return nil
	}
	return apperr.Validation("%s", c.msg)
}
