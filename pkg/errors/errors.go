package errors

import "errors"

// ErrMalformedInput 输入格式非法：星期代码、HH:MM 时间、日期等无法解析
var ErrMalformedInput = errors.New("输入格式无效")

// ErrRecordNotFound 文档存储中不存在该记录
var ErrRecordNotFound = errors.New("记录不存在")
