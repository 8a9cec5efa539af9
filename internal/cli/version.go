package cli

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// MinForceWithLeaseVersion is the first git release that understands
// `push --force-with-lease`.
const MinForceWithLeaseVersion = "1.8.5"

var versionRegex = regexp.MustCompile(`v?(\d+)(?:\.(\d+))?(?:\.(\d+))?`)

// NormalizeVersion 将 "2.39.2 (Apple Git-143)"、"2.41.0.windows.1" 等格式
// 规范化为 semver 形式 "v2.39.2"
func NormalizeVersion(versionStr string) (string, error) {
	versionStr = strings.TrimSpace(versionStr)
	if versionStr == "" {
		return "", fmt.Errorf("empty version string")
	}

	matches := versionRegex.FindStringSubmatch(versionStr)
	if matches == nil {
		return "", fmt.Errorf("invalid version format: %s", versionStr)
	}

	v := "v" + matches[1]
	for _, part := range matches[2:] {
		if part == "" {
			part = "0"
		}
		v += "." + part
	}

	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid version format: %s", versionStr)
	}
	return semver.Canonical(v), nil
}

// CompareVersions 比较两个版本字符串
// 返回: -1 (v1 < v2), 0 (v1 == v2), 1 (v1 > v2)
func CompareVersions(v1Str, v2Str string) int {
	v1, err1 := NormalizeVersion(v1Str)
	v2, err2 := NormalizeVersion(v2Str)

	// 如果解析失败，简单字符串比较
	if err1 != nil || err2 != nil {
		return strings.Compare(v1Str, v2Str)
	}
	return semver.Compare(v1, v2)
}

// CheckMinVersion 检查当前版本是否满足最低版本要求
func CheckMinVersion(current, minimum string) (bool, error) {
	if _, err := NormalizeVersion(current); err != nil {
		return false, fmt.Errorf("invalid current version: %w", err)
	}
	if _, err := NormalizeVersion(minimum); err != nil {
		return false, fmt.Errorf("invalid minimum version: %w", err)
	}
	return CompareVersions(current, minimum) >= 0, nil
}
