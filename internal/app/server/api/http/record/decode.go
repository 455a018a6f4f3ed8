package record

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"

	"github.com/tidwall/gjson"

	"employees/internal/app/server/api/http/apierror"
	"employees/internal/domain/record"
)

// decodePatch разбирает тело запроса в Patch. Строки и числа принимаются
// как текст поля, null считается отсутствием ключа, неизвестные ключи
// игнорируются. Второе значение сообщает, были ли в объекте ключи вообще.
func decodePatch(raw []byte) (record.Patch, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, false, record.ErrEmptyBody
	}
	if !gjson.ValidBytes(raw) {
		return nil, false, apierror.New(http.StatusBadRequest, apierror.KindInvalidBody, "Malformed JSON body")
	}

	body := gjson.ParseBytes(raw)
	if !body.IsObject() {
		return nil, false, apierror.New(http.StatusBadRequest, apierror.KindInvalidBody, "Request body must be a JSON object")
	}

	var (
		patch   = record.Patch{}
		hasKeys bool
		badKey  string
	)
	body.ForEach(func(key, value gjson.Result) bool {
		hasKeys = true
		if !slices.Contains(record.Fields, key.String()) {
			return true
		}

		switch value.Type {
		case gjson.Null:
		case gjson.String:
			patch[key.String()] = value.String()
		case gjson.Number:
			patch[key.String()] = value.Raw
		default:
			badKey = key.String()
			return false
		}
		return true
	})

	if badKey != "" {
		return nil, hasKeys, apierror.New(http.StatusBadRequest, apierror.KindInvalidBody,
			fmt.Sprintf("Field %q must be a string or a number", badKey))
	}
	return patch, hasKeys, nil
}
