// Package usecase はシンボル解決のビジネスロジックを実装します。
package usecase

const (
	// DefaultWorkers は行解決の並列ワーカー数のデフォルトです。
	DefaultWorkers = 8
	// MaxWorkers は行解決の並列ワーカー数の上限です。
	MaxWorkers = 32
)

// SingleMatchPolicy は「単独の強い一致」を採用する判定規則です。
// 無効のときは、Symbol欠落行に候補が1つでもあれば常にAMBIGUOUSになります
// （リファレンス挙動）。有効のときは、最上位スコアがAcceptScore以上かつ
// 次点がRunnerUpCeiling未満（または次点なし）の行をFILLEDとして扱います。
type SingleMatchPolicy struct {
	Enabled         bool
	AcceptScore     float64
	RunnerUpCeiling float64
}

// Config は行解決の挙動を決める設定です。
// 再現性のためコンストラクタで注入し、環境へは直接手を伸ばしません。
type Config struct {
	Workers     int
	SingleMatch SingleMatchPolicy
}

// DefaultConfig はリファレンス挙動のデフォルト設定を返します。
func DefaultConfig() Config {
	return Config{
		Workers: DefaultWorkers,
		SingleMatch: SingleMatchPolicy{
			Enabled:         false,
			AcceptScore:     0.85,
			RunnerUpCeiling: 0.60,
		},
	}
}

// normalized は不正値を丸めた設定を返します。
func (c Config) normalized() Config {
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	if c.Workers > MaxWorkers {
		c.Workers = MaxWorkers
	}
	return c
}
