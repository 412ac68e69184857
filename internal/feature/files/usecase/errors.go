package usecase

import "errors"

// filesフィーチャーのセンチネルエラー。パース失敗はリクエストレベルの400になります。
var (
	// ErrEmptyFile はアップロードが空の場合に返されます。
	ErrEmptyFile = errors.New("file is empty")
	// ErrNoRows はヘッダーのみでデータ行が無い場合に返されます。
	ErrNoRows = errors.New("no data rows")
	// ErrNoResolvableColumns はNameにもSymbolにも対応付かない場合に返されます。
	ErrNoResolvableColumns = errors.New("no name or symbol column found")
)
