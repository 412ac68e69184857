// Package normalize は企業名とティッカーの正規化・類似度計算を提供します。
package normalize

import (
	"strings"
	"unicode"
)

// stopwords は比較前に取り除く法人格などの一般語です。
var stopwords = map[string]struct{}{
	"inc": {}, "incorporated": {}, "corporation": {}, "corp": {}, "co": {},
	"company": {}, "plc": {}, "sa": {}, "nv": {}, "ag": {}, "se": {},
	"the": {}, "ltd": {}, "limited": {}, "holdings": {}, "holding": {},
	"group": {},
}

// Symbol はティッカーを正規形（前後空白除去 + 大文字）にします。
func Symbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Name はエイリアスのキーに使う正規形（前後空白除去 + 小文字）を返します。
func Name(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Tokenize は名前を小文字の英数字トークン列に分解します。
func Tokenize(s string) []string {
	s = strings.ToLower(s)
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Simplify は法人格などの一般語を除いた比較用の名前を返します。
// "class a" のような株式クラス表記は "classa" に畳み込みます。
func Simplify(s string) string {
	toks := Tokenize(s)
	out := make([]string, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t == "class" && i+1 < len(toks) {
			next := toks[i+1]
			if next == "a" || next == "b" || next == "c" {
				out = append(out, "class"+next)
				i++
				continue
			}
		}
		if _, ok := stopwords[t]; ok {
			continue
		}
		out = append(out, t)
	}
	return strings.Join(out, " ")
}

// SanitizeQuery は外部API照会用にクエリ文字列を整形します。
// 記号を空白に置き換え、長すぎるクエリは先頭8語に切り詰めます。
func SanitizeQuery(q string) string {
	toks := Tokenize(q)
	if len(toks) > 8 {
		toks = toks[:8]
	}
	return strings.Join(toks, " ")
}

// jaccard はトークン集合のJaccard係数を返します。
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := make(map[string]struct{}, len(a))
	for _, t := range a {
		setA[t] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, t := range b {
		setB[t] = struct{}{}
	}
	inter := 0
	for t := range setA {
		if _, ok := setB[t]; ok {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// bigrams は文字バイグラムの多重集合を返します。
func bigrams(s string) map[string]int {
	out := map[string]int{}
	runes := []rune(s)
	for i := 0; i+1 < len(runes); i++ {
		out[string(runes[i:i+2])]++
	}
	return out
}

// dice は簡略化済み文字列同士のDice係数を返します。
func dice(a, b string) float64 {
	ba, bb := bigrams(a), bigrams(b)
	if len(ba) == 0 || len(bb) == 0 {
		return 0
	}
	inter, total := 0, 0
	for g, n := range ba {
		total += n
		if m, ok := bb[g]; ok {
			if m < n {
				inter += m
			} else {
				inter += n
			}
		}
	}
	for _, n := range bb {
		total += n
	}
	if total == 0 {
		return 0
	}
	return 2 * float64(inter) / float64(total)
}

// FuzzyScore は2つの企業名の類似度を[0,1]で返します。
// トークンJaccardと文字バイグラムDiceの加重和です。
func FuzzyScore(a, b string) float64 {
	ja := jaccard(Tokenize(a), Tokenize(b))
	di := dice(Simplify(a), Simplify(b))
	score := 0.62*ja + 0.38*di
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
