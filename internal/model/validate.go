// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the web forms of the watchlist and their validation
// rules. Length limits are counted in characters, not bytes.
package model

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Field length limits enforced on form submission.
const (
	MaxTitleLength = 60
	MaxYearLength  = 4
	MaxNameLength  = 20
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors maps a failed validation to field name -> human readable reason.
// It returns nil for a nil error and for errors that are not validation errors.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "is required"
		case "max":
			out[fe.Field()] = fmt.Sprintf("must be at most %s characters", fe.Param())
		default:
			out[fe.Field()] = "is invalid"
		}
	}
	return out
}
