package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v2"

	"github.com/diillson/kitchen-cost-engine/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// table é uma seção tabular de um relatório. O CSV escreve as tabelas em
// sequência; o XLSX usa uma planilha por tabela e o PDF uma grade com título.
type table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", eris.Wrap(err, "could not get current working directory")
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", eris.Wrapf(err, "error creating output directory '%s'", dir)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Regex para limpar formatação pterm (rich tags) e sequências ANSI de cor/estilo.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags remove tags de formatação do pterm e sequências ANSI.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}

// money formata um valor monetário com duas casas, arredondando metade para longe do zero.
func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// qty formata gramas, percentuais e outras medidas.
func qty(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

func (r *ExportRepositoryImpl) writeCSV(tables []table, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", eris.Wrap(err, "error creating CSV file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	for i, t := range tables {
		if i > 0 {
			if err := writer.Write([]string{}); err != nil {
				return "", eris.Wrap(err, "error writing CSV file")
			}
		}
		records := append([][]string{{t.Title}, t.Header}, t.Rows...)
		for _, rec := range records {
			if err := writer.Write(rec); err != nil {
				return "", eris.Wrap(err, "error writing CSV file")
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", eris.Wrap(err, "error flushing CSV file")
	}

	return filepath.Abs(outputFilename)
}

func (r *ExportRepositoryImpl) writeJSON(data any, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", eris.Wrap(err, "error creating JSON file")
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "", eris.Wrap(err, "error encoding JSON data")
	}

	return filepath.Abs(outputFilename)
}

// sheetName corta o título nos 31 caracteres aceitos pelo Excel e mantém os nomes únicos.
func sheetName(title string, used map[string]bool) string {
	name := title
	if len(name) > 31 {
		name = name[:31]
	}
	base := name
	for n := 2; used[name]; n++ {
		suffix := fmt.Sprintf(" (%d)", n)
		cut := base
		if len(cut)+len(suffix) > 31 {
			cut = cut[:31-len(suffix)]
		}
		name = cut + suffix
	}
	used[name] = true
	return name
}

func (r *ExportRepositoryImpl) writeXLSX(tables []table, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "xlsx")
	if err != nil {
		return "", err
	}

	f := xlsx.NewFile()
	used := make(map[string]bool)
	for _, t := range tables {
		sheet, err := f.AddSheet(sheetName(t.Title, used))
		if err != nil {
			return "", eris.Wrapf(err, "xlsx: add sheet %q", t.Title)
		}

		header := sheet.AddRow()
		for _, h := range t.Header {
			cell := header.AddCell()
			cell.SetString(h)
			cell.GetStyle().Font.Bold = true
		}
		for _, rowData := range t.Rows {
			row := sheet.AddRow()
			for _, v := range rowData {
				cell := row.AddCell()
				if n, err := strconv.ParseFloat(v, 64); err == nil {
					cell.SetFloat(n)
				} else {
					cell.SetString(v)
				}
			}
		}
	}
	if len(tables) == 0 {
		if _, err := f.AddSheet("Report"); err != nil {
			return "", eris.Wrap(err, "xlsx: add sheet")
		}
	}

	if err := f.Save(outputFilename); err != nil {
		return "", eris.Wrap(err, "error writing XLSX file")
	}
	return filepath.Abs(outputFilename)
}

// pdfWriter guarda o layout de página compartilhado pelos relatórios PDF.
type pdfWriter struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	footer string
}

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
)

func (r *ExportRepositoryImpl) newPDF(footer string) *pdfWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	w := &pdfWriter{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		footer: fmt.Sprintf("%s | %s", footer, r.now().Format("2006-01-02")),
	}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, w.tr(w.footer), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})
	return w
}

func (w *pdfWriter) banner(title, subtitle string) {
	pdf := w.pdf
	pdf.AddPage()
	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	if len(title) > 80 {
		title = title[:77] + "..."
	}
	pdf.CellFormat(0, 12, w.tr("  "+title), "", 1, "L", true, 0, "")

	if subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(0, 8, w.tr("  "+subtitle), "", 1, "L", true, 0, "")
	}
	pdf.Ln(8)
}

func (w *pdfWriter) section(title string) {
	pdf := w.pdf
	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
	pdf.Cell(0, 8, w.tr(title))
	pdf.Ln(7)
	pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
	pdf.Ln(4)
}

func (w *pdfWriter) text(content string) {
	if content == "" {
		return
	}
	pdf := w.pdf
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.MultiCell(190, 5, w.tr(cleanRichTags(content)), "", "L", false)
	pdf.Ln(6)
}

// grid desenha uma tabela com colunas de mesma largura; a primeira alinhada à esquerda.
func (w *pdfWriter) grid(t table) {
	if len(t.Header) == 0 {
		return
	}
	w.section(t.Title)
	pdf := w.pdf
	colWidth := 190.0 / float64(len(t.Header))

	pdf.SetFont("Arial", "B", 9)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	for i, h := range t.Header {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(colWidth, 7, w.tr(h), "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range t.Rows {
		for i := range t.Header {
			v := ""
			if i < len(row) {
				v = row[i]
			}
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(colWidth, 6, w.tr(v), "", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

func (w *pdfWriter) save(outputFilename string) (string, error) {
	if err := w.pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", eris.Wrap(err, "error writing PDF file")
	}
	return filepath.Abs(outputFilename)
}
