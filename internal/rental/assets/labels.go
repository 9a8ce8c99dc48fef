package assets

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const (
	EncodingUTF8     = "utf8"
	EncodingShiftJIS = "sjis"
)

var labelHeader = []string{"code", "product", "sku", "warehouse"}

// writeLabelsCSV renders label rows. Shift_JIS output is what the label printer
// software on Windows (CP932) reads.
func writeLabelsCSV(rows []LabelRow, encoding string) ([]byte, error) {
	var b bytes.Buffer
	var out io.Writer = &b
	var tw *transform.Writer
	if encoding == EncodingShiftJIS {
		tw = transform.NewWriter(&b, japanese.ShiftJIS.NewEncoder())
		out = tw
	}

	w := csv.NewWriter(out)
	if err := w.Write(labelHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		wh := ""
		if r.WarehouseID.Valid {
			wh = strconv.FormatInt(r.WarehouseID.Int64, 10)
		}
		if err := w.Write([]string{r.Code, r.ProductName, r.SKU, wh}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	if tw != nil {
		if err := tw.Close(); err != nil {
			return nil, err
		}
	}
	return b.Bytes(), nil
}
