//go:build !unix

package server

import "os"

// shutdownSignals はシャットダウンを開始するシグナル
// SIGTERM を配送しないプラットフォームでは割り込みのみ
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
