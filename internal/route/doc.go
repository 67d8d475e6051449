// Package route は、(メソッド, パス) から固定レスポンスへの対応表を定義する
//
// 対応表はプロファイルとアセットから起動時に一度だけ構築され、
// 以後変更されない。未登録の組み合わせはすべて 404 エントリに解決される。
package route
