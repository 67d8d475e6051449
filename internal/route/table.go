package route

import (
	"fmt"
	"net/http"
	"strings"

	"yipee/internal/assets"
)

// Profile は登録するルートの集合を表す
type Profile string

// Profile の定数定義
const (
	ProfileFull    Profile = "full"    // 全ルート
	ProfileMinimal Profile = "minimal" // index, style.css, test のみ
)

// ParseProfile は文字列をプロファイルに変換する
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p, nil
}

// Validate はプロファイルの妥当性を検証する
func (p Profile) Validate() error {
	switch p {
	case ProfileFull, ProfileMinimal:
		return nil
	default:
		return fmt.Errorf("不明なルートプロファイル: %q", string(p))
	}
}

// Action はルートが一致したときの動作
type Action int

// Action の定数定義
const (
	ActionServe Action = iota // アセットを返す
	ActionPing                // 診断行を出力して空のレスポンスを返す
)

// コンテンツタイプ
const (
	ContentTypeHTML       = "text/html; charset=utf-8"
	ContentTypeNotFound   = "text/html"
	ContentTypeCSS        = "text/css"
	ContentTypeJavaScript = "text/javascript; charset=utf-8"
	ContentTypeGIF        = "image/gif"
)

// Entry は一つのルートエントリ
type Entry struct {
	Method      string
	Path        string
	Status      int
	ContentType string // ActionPing では空
	Asset       string // ActionPing では空
	Body        []byte
	Action      Action
}

type definition struct {
	method      string
	path        string
	contentType string
	asset       string
	action      Action
	minimal     bool
}

// definitions は登録順に並んだ全ルート
var definitions = []definition{
	{http.MethodGet, "/", ContentTypeHTML, assets.Index, ActionServe, true},
	{http.MethodGet, "/style.css", ContentTypeCSS, assets.Stylesheet, ActionServe, true},
	{http.MethodGet, "/htmx.min.js", ContentTypeJavaScript, assets.HTMX, ActionServe, false},
	{http.MethodGet, "/sse.js", ContentTypeJavaScript, assets.HTMXSSE, ActionServe, false},
	{http.MethodGet, "/ws.js", ContentTypeJavaScript, assets.HTMXWS, ActionServe, false},
	{http.MethodPost, "/test", "", "", ActionPing, true},
	{http.MethodGet, "/yipee.gif", ContentTypeGIF, assets.Yipee, ActionServe, false},
}

func (d definition) enabled(p Profile) bool {
	return p == ProfileFull || d.minimal
}

// RequiredAssets はプロファイルが必要とするアセット名を返す
func RequiredAssets(p Profile) []string {
	names := []string{assets.NotFound}
	for _, d := range definitions {
		if d.enabled(p) && d.asset != "" {
			names = append(names, d.asset)
		}
	}
	return names
}

type key struct {
	method string
	path   string
}

// Table は構築後に変更されないルート表
type Table struct {
	profile  Profile
	entries  []Entry
	index    map[key]int
	notFound Entry
}

// Build はプロファイルとアセットからルート表を構築する
func Build(p Profile, bundle *assets.Bundle) (*Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	notFound, ok := bundle.Get(assets.NotFound)
	if !ok {
		return nil, fmt.Errorf("アセット %s がありません", assets.NotFound)
	}

	t := &Table{
		profile: p,
		index:   make(map[key]int),
		notFound: Entry{
			Status:      http.StatusNotFound,
			ContentType: ContentTypeNotFound,
			Asset:       assets.NotFound,
			Body:        notFound,
			Action:      ActionServe,
		},
	}

	for _, d := range definitions {
		if !d.enabled(p) {
			continue
		}

		e := Entry{
			Method:      d.method,
			Path:        d.path,
			Status:      http.StatusOK,
			ContentType: d.contentType,
			Asset:       d.asset,
			Action:      d.action,
		}
		if d.asset != "" {
			body, ok := bundle.Get(d.asset)
			if !ok {
				return nil, fmt.Errorf("ルート %s %s のアセット %s がありません", d.method, d.path, d.asset)
			}
			e.Body = body
		}

		t.index[key{d.method, d.path}] = len(t.entries)
		t.entries = append(t.entries, e)
	}

	return t, nil
}

// Profile はルート表の構築に使われたプロファイルを返す
func (t *Table) Profile() Profile {
	return t.profile
}

// Entries は登録されたエントリのコピーを登録順に返す
func (t *Table) Entries() []Entry {
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// NotFound はフォールバックのエントリを返す
func (t *Table) NotFound() Entry {
	return t.notFound
}

// Lookup はメソッドとパスに対応するエントリを返す
// HEAD は GET のエントリに解決される。一致しない場合は 404 エントリと false を返す
func (t *Table) Lookup(method, path string) (Entry, bool) {
	if i, ok := t.index[key{method, path}]; ok {
		return t.entries[i], true
	}
	if method == http.MethodHead {
		if i, ok := t.index[key{http.MethodGet, path}]; ok {
			return t.entries[i], true
		}
	}
	return t.notFound, false
}
