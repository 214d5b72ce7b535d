package xutil

import (
	"errors"
	"net"
)

// GetLocalIp 获取本机ipv4，优先返回内网ip，其次公网ip
func GetLocalIp() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}

	var private, public string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue // 网卡可能已被移除
		}
		for _, a := range addrs {
			ipNet, ok := a.(*net.IPNet)
			if !ok || ipNet.IP.To4() == nil || ipNet.IP.IsUnspecified() || ipNet.IP.IsMulticast() {
				continue
			}
			if ipNet.IP.IsPrivate() || ipNet.IP.IsLinkLocalUnicast() {
				if private == "" {
					private = ipNet.IP.String()
				}
			} else if public == "" {
				public = ipNet.IP.String()
			}
		}
	}

	if private != "" {
		return private, nil
	}
	if public != "" {
		return public, nil
	}
	return "", errors.New("no IP address found")
}
