package assets

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed all:html
var embedFS embed.FS

// Embedded はバイナリに埋め込まれたアセットのファイルシステムを返す
func Embedded() fs.FS {
	// html のサブディレクトリを取得
	htmlFS, err := fs.Sub(embedFS, "html")
	if err != nil {
		log.Fatalf("埋め込みアセットファイルシステムの作成に失敗: %v", err)
	}
	return htmlFS
}
