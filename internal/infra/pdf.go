package infra

// pdf.go — Geração do documento de orçamento com go-pdf/fpdf.
// Documento A4 com:
//   - cabeçalho da empresa
//   - bloco contratante / evento
//   - tabela de itens (produto, quantidade, unitário, subtotal)
//   - total em negrito
// O arquivo sai em storagePath/orcamento_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/CunhaBSb/m5max-sub000/internal/model"
)

// GerarOrcamentoPDF writes the quote document for an Orcamento (items must be
// preloaded) and returns the absolute path of the generated file.
func GerarOrcamentoPDF(o *model.Orcamento, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("orcamento_%s.pdf", o.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Cabeçalho ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "M5 Max Producoes", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Orcamento de show pirotecnico", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// ── Contratante / evento ─────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Contratante: "+o.NomeContratante, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Evento: "+o.NomeEvento, "", 1, "L", false, 0, "")
	if o.DataEvento != nil {
		pdf.CellFormat(contentW, 6, "Data: "+o.DataEvento.Format("02/01/2006"), "", 1, "L", false, 0, "")
	}
	if o.LocalEvento != "" {
		pdf.CellFormat(contentW, 6, "Local: "+o.LocalEvento, "", 1, "L", false, 0, "")
	}
	if o.ModoPagamento != "" {
		pdf.CellFormat(contentW, 6, "Pagamento: "+o.ModoPagamento, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Tabela de itens ──────────────────────────────────────────────────────
	col1 := contentW * 0.46 // produto
	col2 := contentW * 0.14 // quantidade
	col3 := contentW * 0.20 // unitário
	col4 := contentW * 0.20 // subtotal

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Produto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Qtd", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Unitario", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range o.Itens {
		nome := ""
		if item.Produto != nil {
			nome = item.Produto.Nome
		}
		if len(nome) > 40 {
			nome = nome[:39] + "…"
		}
		pdf.CellFormat(col1, 6, nome, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", item.Quantidade), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "R$ "+item.PrecoUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "R$ "+item.ValorTotal().StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col4, 8, "R$ "+o.ValorTotal.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Rodapé ───────────────────────────────────────────────────────────────
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Validade do orcamento: 15 dias.", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
