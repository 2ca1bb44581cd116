package docstore

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/Cameron2125/HackathonApp/internal/calendar"
)

// ValidationError 文档无法转换为目标结构或未通过校验
type ValidationError struct {
	Collection string
	ID         string
	Fields     []string // 未通过校验的字段（json 名）
	Err        error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("文档 %s/%s 校验失败 %v: %v", e.Collection, e.ID, e.Fields, e.Err)
	}
	return fmt.Sprintf("文档 %s/%s 校验失败: %v", e.Collection, e.ID, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 错误中使用 json 字段名，与文档字段一致
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := RegisterRules(v); err != nil {
		panic(err)
	}
	return v
}

// RegisterRules 注册日历相关的校验规则：weekday、hhmm、isotime
// 文档校验与 gin 请求绑定共用
func RegisterRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"weekday": func(fl validator.FieldLevel) bool {
			_, err := calendar.ParseWeekday(fl.Field().String())
			return err == nil
		},
		"hhmm": func(fl validator.FieldLevel) bool {
			_, err := calendar.ParseTimeOfDay(fl.Field().String())
			return err == nil
		},
		"isotime": func(fl validator.FieldLevel) bool {
			_, err := calendar.ParseInstant(fl.Field().String(), time.UTC)
			return err == nil
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("注册校验规则 %s 失败: %w", tag, err)
		}
	}
	return nil
}

// Decode 把动态文档转换为 dst 指向的结构体并执行 validate 标签校验
func Decode(rec Record, collection string, dst any) error {
	b, err := sonic.Marshal(rec.Fields)
	if err != nil {
		return &ValidationError{Collection: collection, ID: rec.ID, Err: err}
	}
	if err := sonic.Unmarshal(b, dst); err != nil {
		return &ValidationError{Collection: collection, ID: rec.ID, Err: err}
	}
	if err := validate.Struct(dst); err != nil {
		ve := &ValidationError{Collection: collection, ID: rec.ID, Err: err}
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				ve.Fields = append(ve.Fields, fe.Field())
			}
		}
		return ve
	}
	return nil
}

// Encode 把结构体转换为文档字段
func Encode(src any) (map[string]any, error) {
	b, err := sonic.Marshal(src)
	if err != nil {
		return nil, fmt.Errorf("编码文档失败: %w", err)
	}
	var fields map[string]any
	if err := sonic.Unmarshal(b, &fields); err != nil {
		return nil, fmt.Errorf("编码文档失败: %w", err)
	}
	return fields, nil
}

// normalize 统一字段值的动态类型（数字为 float64），与 JSONB 读回的结果一致
func normalize(v any) (any, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := sonic.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
