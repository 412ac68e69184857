// loadmaster はCSVファイルからローカル銘柄マスタを投入するコマンドです。
//
// 使い方:
//
//	loadmaster -file symbols.csv
//
// CSVは symbol,name[,type] のヘッダー付き形式です。既存のシンボルは上書きされます。
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strings"

	"gorm.io/gorm/clause"

	"ticker_backend/internal/feature/resolution/domain/entity"
	platformdb "ticker_backend/internal/platform/db"
	"ticker_backend/internal/shared/normalize"
)

func main() {
	path := flag.String("file", "", "path to the symbols CSV (symbol,name[,type])")
	flag.Parse()
	if *path == "" {
		log.Fatal("usage: loadmaster -file symbols.csv")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	symbols, err := readMasterCSV(f)
	if err != nil {
		log.Fatal(err)
	}
	if len(symbols) == 0 {
		log.Fatal("no symbols found in ", *path)
	}

	db := platformdb.OpenDB()

	// 同一シンボルは上書き（再投入できるように）
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "type", "is_active"}),
	}).Create(&symbols)
	if res.Error != nil {
		log.Fatal("failed to load master symbols: ", res.Error)
	}

	log.Printf("loaded %d symbols", len(symbols))
}

// readMasterCSV はヘッダー付きCSVを銘柄マスタの行に変換します。
// symbolまたはnameが空の行はスキップします。
func readMasterCSV(r io.Reader) ([]entity.MasterSymbol, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var out []entity.MasterSymbol
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		sym := normalize.Symbol(field(rec, col, "symbol"))
		name := strings.TrimSpace(field(rec, col, "name"))
		if sym == "" || name == "" {
			continue
		}

		typ := strings.TrimSpace(field(rec, col, "type"))
		if typ == "" {
			typ = "Common Stock"
		}

		out = append(out, entity.MasterSymbol{
			Symbol:   sym,
			Name:     name,
			Type:     typ,
			IsActive: true,
		})
	}
	return out, nil
}

func field(rec []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return rec[i]
}
