package assets

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
)

// アセット名（アセットルートからの相対パス）
const (
	Index      = "index.html"
	NotFound   = "404.html"
	Stylesheet = "style.css"
	HTMX       = "htmx/htmx.min.js"
	HTMXSSE    = "htmx/sse.js"
	HTMXWS     = "htmx/ws.js"
	Yipee      = "img/yipee.gif"
)

// Bundle は起動時に読み込まれた不変のアセット集合
type Bundle struct {
	files map[string][]byte
}

// Load は fsys から指定されたアセットを読み込む
// 一つでも欠けていればエラーを返す
func Load(fsys fs.FS, names ...string) (*Bundle, error) {
	b := &Bundle{files: make(map[string][]byte, len(names))}

	for _, name := range names {
		if _, ok := b.files[name]; ok {
			continue
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("アセット %s の読み込みに失敗: %w", name, err)
		}
		b.files[name] = data
	}

	return b, nil
}

// Open はアセットを読み込む
// dir が空の場合は埋め込みアセットを、そうでなければディスク上のディレクトリを使う
func Open(dir string, names ...string) (*Bundle, error) {
	if dir == "" {
		return Load(Embedded(), names...)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("アセットディレクトリの確認に失敗: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("アセットディレクトリではありません: %s", dir)
	}

	return Load(os.DirFS(dir), names...)
}

// Get は名前に対応するアセットの内容を返す
// 返されるスライスは共有されるため、呼び出し側で変更してはならない
func (b *Bundle) Get(name string) ([]byte, bool) {
	data, ok := b.files[name]
	return data, ok
}

// Names は読み込まれたアセット名を昇順で返す
func (b *Bundle) Names() []string {
	names := make([]string, 0, len(b.files))
	for name := range b.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
