// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package schema

import "errors"

var (
	ErrFieldMissing = errors.New("field missing")
	ErrFieldType    = errors.New("field has wrong type")
	ErrUnknownKind  = errors.New("unknown field kind")
)
