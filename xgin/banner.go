package xgin

import (
	"fmt"

	"github.com/xiaoshicae/xactor/xserver"
)

// PrintBanner 启动时打印
func PrintBanner() {
	fmt.Println(bannerTxt)
	coloredName := fmt.Sprintf("\x1b[32m%s\x1b[0m", "::     XActor     ::")
	fmt.Printf("   %s         (%s RELEASE)\n\n", coloredName, xserver.VERSION)
}

var bannerTxt = `
 __  __     _         _
 \ \/ /    / \   ___ | |_  ___   _ __
  \  /    / _ \ / __|| __|/ _ \ | '__|
  /  \   / ___ \ (__ | |_| (_) || |
 /_/\_\ /_/   \_\___| \__|\___/ |_|`
