// Package service реализует бизнес-логику сервиса проверки национальных кодов.
package service

import (
	"context"
	"time"

	"github.com/mmeshcher/nationalcode/internal/model"
	"github.com/mmeshcher/nationalcode/internal/validation"
)

// Recorder описывает контракт учёта метрик, используемый сервисом.
type Recorder interface {
	ObserveCheck(result string, d time.Duration)
}

// Service содержит бизнес-логику проверки национальных кодов.
type Service struct {
	recorder Recorder
}

// NewService создаёт новый сервис с указанным получателем метрик.
func NewService(recorder Recorder) *Service {
	return &Service{
		recorder: recorder,
	}
}

// CheckNationalCode проверяет национальный код и возвращает вердикт.
func (s *Service) CheckNationalCode(ctx context.Context, input string) model.Verdict {
	start := time.Now()

	code, valid := validation.Check(input)
	verdict := model.Verdict{
		Input: input,
		Code:  code,
		Valid: valid,
	}

	if s.recorder != nil {
		s.recorder.ObserveCheck(verdict.Result(), time.Since(start))
	}

	return verdict
}
