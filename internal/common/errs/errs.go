package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ValidationError 字段级校验错误（field -> message）。
// 所有校验失败在同一个请求内同步返回给调用方，不做重试。
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidation 用单个字段错误构造 ValidationError。
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// NotFoundError 资源不存在（未知 employee code / permit id 等）。
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}

// NewNotFound 构造 NotFoundError。
func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// AsValidation 判断 err 是否为 ValidationError。
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsNotFound 判断 err 是否为 NotFoundError。
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
