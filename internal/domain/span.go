package domain

import (
	"context"
	"time"
)

// Span times one stage of a pricing run
type Span struct {
	Name    string `json:"name"`
	startTs time.Time

	ElapsedMs *int64 `json:"elapsedMs"`
}

type profileContextKey string

const ContextProfileKey profileContextKey = "pricingProfile"

// Profile is simply a list of spans
type Profile struct {
	Spans   []*Span `json:"spans"`
	startTs time.Time
	TotalMs *int64 `json:"totalMs"`
}

func NewProfile() (newProfile *Profile, endNewProfile func()) {
	newProfile = &Profile{
		Spans:   []*Span{},
		startTs: time.Now(),
	}
	return newProfile, newProfile.End
}

// ProfileFromContext returns the profile attached to ctx, or a fresh one
// that nobody else will read
func ProfileFromContext(ctx context.Context) *Profile {
	if p, ok := ctx.Value(ContextProfileKey).(*Profile); ok && p != nil {
		return p
	}
	p, _ := NewProfile()
	return p
}

func NewCtxWithProfile(ctx context.Context, p *Profile) context.Context {
	return context.WithValue(ctx, ContextProfileKey, p)
}

func (p *Profile) End() {
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	if p.TotalMs == nil {
		t := time.Since(p.startTs).Milliseconds()
		p.TotalMs = &t
	}
}

func (s *Span) End() {
	if s.ElapsedMs == nil {
		t := time.Since(s.startTs).Milliseconds()
		s.ElapsedMs = &t
	}
}

// StartNewSpan ends the last span and begins a new one
// not thread safe
func (p *Profile) StartNewSpan(name string) (newSpan *Span, endSpan func()) {
	newSpan = &Span{
		Name:    name,
		startTs: time.Now(),
	}
	if len(p.Spans) > 0 {
		p.Spans[len(p.Spans)-1].End()
	}
	p.Spans = append(p.Spans, newSpan)
	return newSpan, newSpan.End
}
