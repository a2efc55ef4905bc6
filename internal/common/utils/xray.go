package utils

import (
	"log"
	"os"

	"github.com/aws/aws-xray-sdk-go/xray"
)

// ConfigureXRay はX-Rayデーモンへの送信を設定します
func ConfigureXRay(serviceVersion string) {
	if err := xray.Configure(xray.Config{
		DaemonAddr:     "127.0.0.1:2000", // X-Rayデーモンのアドレス
		ServiceVersion: serviceVersion,
	}); err != nil {
		log.Printf("Failed to configure X-Ray: %v", err)
		// X-Ray設定失敗時はデフォルトの設定を使用
		if configErr := xray.Configure(xray.Config{}); configErr != nil {
			log.Fatalf("Failed to configure default X-Ray settings: %v", configErr)
		}
	}
	os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
}
