// Package server は、HTTPサーバーのルーティングとライフサイクルを管理します。
//
// このパッケージは、ルート表に従った固定レスポンスの配信と、
// ソケットのバインドからグレースフルシャットダウンまでを担当します。
//
// 責務:
//   - ルート表の各エントリを gin のハンドラとして登録
//   - 未登録の (メソッド, パス) を 404 ページに振り分け
//   - POST /test で診断行を標準出力へ書き出す
//   - シグナル受信時のグレースフルシャットダウン
//
// 仕様:
//   - ルーティングは gin を使用
//   - 末尾スラッシュのリダイレクトと 405 応答は行わない
//   - 割り込みシグナルと（unix では）SIGTERM のうち先に届いたものでシャットダウン
//   - 処理中のリクエストは完了を待ってから終了する
package server
