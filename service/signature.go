package service

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
	"sort"
	"strings"
)

// CheckSignature 校验微信服务器签名
// 算法：token、timestamp、nonce 字典序排序后拼接，取 SHA-1 十六进制，与 signature 比对。
// 比对用常数时间比较，不因错在第几位提前返回。
func CheckSignature(token, signature, timestamp, nonce string) bool {
	parts := []string{token, timestamp, nonce}
	sort.Strings(parts)
	sum := sha1.Sum([]byte(strings.Join(parts, "")))
	computed := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(computed), []byte(signature)) == 1
}
