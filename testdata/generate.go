package main

import (
	"encoding/csv"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"
	"github.com/pierrec/lz4/v4"
)

type Door struct {
	Artikel     string  `parquet:"Artikel"`
	Tuertyp     string  `parquet:"Tuertyp"`
	Dicke       int64   `parquet:"Dicke_mm"`
	Breite      int64   `parquet:"Breite_mm"`
	Hoehe       int64   `parquet:"Hoehe_mm"`
	Gewicht     float64 `parquet:"Gewicht_kg"`
	Oberflaeche string  `parquet:"Oberflaeche"`
	Lager       bool    `parquet:"Lager"`
}

var doors = []Door{
	{Artikel: "A-100", Tuertyp: "VSR", Dicke: 39, Breite: 860, Hoehe: 1985, Gewicht: 18.5, Oberflaeche: "Weisslack", Lager: true},
	{Artikel: "A-200", Tuertyp: "VSR", Dicke: 45, Breite: 985, Hoehe: 2110, Gewicht: 24.0, Oberflaeche: "Eiche furniert", Lager: true},
	{Artikel: "B-300", Tuertyp: "LS", Dicke: 39, Breite: 735, Hoehe: 1985, Gewicht: 15.2, Oberflaeche: "CPL grau", Lager: false},
	{Artikel: "B-310", Tuertyp: "LS", Dicke: 42, Breite: 860, Hoehe: 2110, Gewicht: 21.7, Oberflaeche: "Weisslack", Lager: true},
	{Artikel: "C-400", Tuertyp: "Brandschutz T30", Dicke: 65, Breite: 985, Hoehe: 2110, Gewicht: 48.3, Oberflaeche: "RAL 9016", Lager: false},
}

func main() {
	writeParquet("catalog.parquet")
	writeCSV("catalog.csv", nil)
	writeCSV("catalog.csv.lz4", func(w io.Writer) io.WriteCloser { return lz4.NewWriter(w) })

	log.Printf("Generated catalog.parquet, catalog.csv and catalog.csv.lz4 with %d doors", len(doors))
}

func writeParquet(name string) {
	file, err := os.Create(name)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Door](file)
	if _, err := writer.Write(doors); err != nil {
		log.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		log.Fatal(err)
	}
}

func writeCSV(name string, wrap func(io.Writer) io.WriteCloser) {
	file, err := os.Create(name)
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	var out io.Writer = file
	if wrap != nil {
		zw := wrap(file)
		defer func() {
			if err := zw.Close(); err != nil {
				log.Fatal(err)
			}
		}()
		out = zw
	}

	w := csv.NewWriter(out)
	_ = w.Write([]string{"Artikel", "Tuertyp", "Dicke_mm", "Breite_mm", "Hoehe_mm", "Gewicht_kg", "Oberflaeche", "Lager"})
	for _, d := range doors {
		_ = w.Write([]string{
			d.Artikel,
			d.Tuertyp,
			strconv.FormatInt(d.Dicke, 10),
			strconv.FormatInt(d.Breite, 10),
			strconv.FormatInt(d.Hoehe, 10),
			strconv.FormatFloat(d.Gewicht, 'g', -1, 64),
			d.Oberflaeche,
			strconv.FormatBool(d.Lager),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatal(err)
	}
}
