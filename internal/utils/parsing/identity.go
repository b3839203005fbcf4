package parsing

import (
	"hash/crc32"
	"net/url"
	"strings"

	"LiveScore/internal/model"
)

// DeriveMatchID 对 "source|url" 做 CRC-32，得到稳定的 32 位 match_id。
// 不保证唯一：不同 URL 理论上可能碰撞，碰撞时两场比赛会被合并。
func DeriveMatchID(source model.SourceType, canonicalURL string) uint32 {
	return crc32.ChecksumIEEE([]byte(string(source) + "|" + canonicalURL))
}

// NormalizeURL 解析相对链接并规范化：强制 https，去掉末尾斜杠、query 与 fragment。
// 无法得到带 host 的 http(s) 地址时返回空串。
func NormalizeURL(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if base != "" {
		if b, err := url.Parse(base); err == nil {
			u = b.ResolveReference(u)
		}
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if u.Host == "" {
		return ""
	}

	u.Scheme = "https"
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}
