//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设为 1 时桌面端按移动端行为运行（本地调试触摸布局）
const MobileEmulateEnv = "PARTICLES_MOBILE_EMULATE"

// IsMobile 是否运行在移动端
// 桌面端编译时只由 MobileEmulateEnv 决定
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
