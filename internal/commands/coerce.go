// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidBool is returned for boolean tokens other than true or false.
var ErrInvalidBool = errors.New("expected true or false")

// ParseValue converts a single token into a Value of type t.
func ParseValue(token string, t TypeTag) (Value, error) {
	switch t {
	case TypeString:
		return StringValue(token), nil
	case TypeInt:
		i, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return Value{}, err
		}
		return IntValue(i), nil
	case TypeFloat:
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil
	case TypeBool:
		switch {
		case strings.EqualFold(token, "true"):
			return BoolValue(true), nil
		case strings.EqualFold(token, "false"):
			return BoolValue(false), nil
		}
		return Value{}, ErrInvalidBool
	default:
		return Value{}, fmt.Errorf("unsupported parameter type %s", t)
	}
}

// Coerce converts tokens into values matching params, position by
// position. The first failing token aborts with a *CoercionError and no
// values are returned. Coerce has no shared state and is safe for
// concurrent use.
func Coerce(tokens []string, params []Param) ([]Value, error) {
	if len(tokens) != len(params) {
		return nil, &ArgumentCountError{Expected: len(params), Actual: len(tokens)}
	}

	values := make([]Value, len(tokens))
	for i, tok := range tokens {
		v, err := ParseValue(tok, params[i].Type)
		if err != nil {
			return nil, &CoercionError{
				Index: i,
				Token: tok,
				Type:  params[i].Type,
				Err:   err,
			}
		}
		values[i] = v
	}
	return values, nil
}
