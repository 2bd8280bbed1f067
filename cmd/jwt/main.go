package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"log/slog"
	"os"
)

// 生成配置文件 jwt.secret_key 用的随机密钥
func main() {
	size := flag.Int("size", 32, "secret size in bytes")
	flag.Parse()

	key := make([]byte, *size)
	if _, err := rand.Read(key); err != nil {
		slog.Error("Failed to generate secret", "err", err)
		os.Exit(1)
	}

	fmt.Println(base64.URLEncoding.EncodeToString(key))
}
