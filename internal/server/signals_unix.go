//go:build unix

package server

import (
	"os"
	"syscall"
)

// shutdownSignals はシャットダウンを開始するシグナル
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt, syscall.SIGTERM}
}
