// file: internals/features/ryls/payments/service/errors.go
package service

import (
	"errors"
	"fmt"
)

/* =========================================================
   Error bertipe untuk orchestrator pembayaran.
   Controller yang menerjemahkan Kind → HTTP status; selain
   Validation/NotFound, pesan ke client dibuat generic.
========================================================= */

type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindGateway
	KindSignature
	KindConsistency
	KindReconciliation
)

type ServiceError struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ServiceError) Unwrap() error { return e.Err }

func newErr(kind ErrorKind, err error, format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func errValidation(format string, args ...interface{}) *ServiceError {
	return newErr(KindValidation, nil, format, args...)
}

func errNotFound(format string, args ...interface{}) *ServiceError {
	return newErr(KindNotFound, nil, format, args...)
}

func errGateway(err error, format string, args ...interface{}) *ServiceError {
	return newErr(KindGateway, err, format, args...)
}

func errSignature(format string, args ...interface{}) *ServiceError {
	return newErr(KindSignature, nil, format, args...)
}

func errConsistency(format string, args ...interface{}) *ServiceError {
	return newErr(KindConsistency, nil, format, args...)
}

func errReconciliation(err error, format string, args ...interface{}) *ServiceError {
	return newErr(KindReconciliation, err, format, args...)
}

// KindOf mengembalikan kind dari error service, 0 kalau bukan.
func KindOf(err error) ErrorKind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
