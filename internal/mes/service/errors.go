package service

import "fmt"

// 领域失败以带标签的错误类型显式传递，由API层翻译为协议错误码。
// 服务层本身不产生任何协议层编码。

// NotFoundError 查找或外键校验未命中
type NotFoundError struct {
	Entity string
	Key    interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

// ConflictError 自然键唯一性冲突
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// ValidationError 入参在写库之前即不合法
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func notFoundErr(entity string, key interface{}) error {
	return &NotFoundError{Entity: entity, Key: key}
}

func conflictErr(entity, field, value string) error {
	return &ConflictError{Entity: entity, Field: field, Value: value}
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
