package review

import (
	"errors"
	"strings"
)

const (
	MaxTitleLength = 120
	MaxBodyLength  = 2000
)

var (
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidTargetType = errors.New("invalid review target type")
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrTitleTooLong      = errors.New("title exceeds maximum length")
	ErrEmptyBody         = errors.New("body cannot be empty")
	ErrBodyTooLong       = errors.New("body exceeds maximum length")
)

type Rating struct {
	value int
}

func NewRating(v int) (Rating, error) {
	if v < 1 || v > 5 {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: v}, nil
}

func (r Rating) Value() int { return r.value }

type Title struct {
	text string
}

func NewTitle(s string) (Title, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Title{}, ErrEmptyTitle
	}
	if len(t) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}
	return Title{text: t}, nil
}

func (t Title) String() string { return t.text }

type Body struct {
	text string
}

func NewBody(s string) (Body, error) {
	b := strings.TrimSpace(s)
	if b == "" {
		return Body{}, ErrEmptyBody
	}
	if len(b) > MaxBodyLength {
		return Body{}, ErrBodyTooLong
	}
	return Body{text: b}, nil
}

func (b Body) String() string { return b.text }
