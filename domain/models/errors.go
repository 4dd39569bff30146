package models

import "errors"

var (
	ErrConnection           = errors.New("cannot open database")
	ErrSchema               = errors.New("cannot read table schema")
	ErrValueConversion      = errors.New("value cannot be converted to an integer")
	ErrRendererPrecondition = errors.New("chart renderer precondition failed")
	ErrIO                   = errors.New("report file is not writable")
)
