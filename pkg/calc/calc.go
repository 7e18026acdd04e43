// Package calc 提供一个极简的算术调度器
//
// 设计说明：
// 1. 纯函数，无状态、无副作用
// 2. 只支持 + - * 三种运算符，其余运算符视为编程错误并返回ErrUnknownOperator
package calc

import "errors"

// Operator 运算符
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
)

// ErrUnknownOperator 不支持的运算符
var ErrUnknownOperator = errors.New("calc: unknown operator")

// Apply 对两个操作数应用运算符
func Apply(a, b float64, op Operator) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	default:
		return 0, ErrUnknownOperator
	}
}
