package cloudinary

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"
)

// SignParams 计算Cloudinary API请求签名
// 非空参数按键名升序拼接为 k=v&k=v 形式，追加api_secret后取SHA-1十六进制摘要
func SignParams(params map[string]string, apiSecret string) string {
	keys := make([]string, 0, len(params))
	for key, value := range params {
		if value == "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + apiSecret))
	return hex.EncodeToString(sum[:])
}
