// Package assets は、配信する静的アセットの読み込みを担う
//
// # 責務
// - HTML/CSS/JS/画像をバイナリに埋め込む
// - 起動時にアセットを一度だけメモリへ読み込む
// - ディスク上のディレクトリで埋め込みアセットを差し替える
//
// # 仕様
// - 読み込んだ Bundle はプロセス終了まで変更されない
// - 必要なアセットが欠けている場合は起動時にエラーとする
package assets
