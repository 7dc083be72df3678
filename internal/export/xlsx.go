package export

import (
	"fmt"
	"io"

	"github.com/iwvelando/payment-clauses/internal/clausula"
	"github.com/iwvelando/payment-clauses/internal/conciliacao"
	"github.com/iwvelando/payment-clauses/internal/condicao"
	"github.com/iwvelando/payment-clauses/internal/cronograma"
	"github.com/iwvelando/payment-clauses/pkg/format"
	"github.com/xuri/excelize/v2"
)

const (
	// SheetCronograma lists one row per installment.
	SheetCronograma = "Cronograma"
	// SheetConciliacao holds the balance against the reference total.
	SheetConciliacao = "Conciliação"
)

// excelize built-in number format "#,##0.00".
const numFmtCurrency = 4

var cronogramaHeader = []interface{}{
	"Ordem", "Tipo", "Parcela", "Vencimento", "Evento", "Valor", "Corrigida", "Índice", "Quitada",
}

var eventos = map[condicao.EventoVencimento]string{
	condicao.EventoAssinatura:    "Assinatura",
	condicao.EventoHabiteSe:      "Habite-se",
	condicao.EventoEntregaChaves: "Entrega das chaves",
}

// WriteScheduleXLSX writes the schedule and the reconciliation result to w as
// an XLSX workbook with the sheets Cronograma and Conciliação.
func WriteScheduleXLSX(w io.Writer, schedule []cronograma.Installment, result conciliacao.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetCronograma); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SheetConciliacao); err != nil {
		return fmt.Errorf("xlsx: create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}
	currencyStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtCurrency})
	if err != nil {
		return fmt.Errorf("xlsx: currency style: %w", err)
	}

	if err := writeCronograma(f, schedule, headerStyle, currencyStyle); err != nil {
		return err
	}
	if err := writeConciliacao(f, result, headerStyle, currencyStyle); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("xlsx: write: %w", err)
	}
	return nil
}

func writeCronograma(f *excelize.File, schedule []cronograma.Installment, headerStyle, currencyStyle int) error {
	if err := f.SetSheetRow(SheetCronograma, "A1", &cronogramaHeader); err != nil {
		return fmt.Errorf("xlsx: header: %w", err)
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(cronogramaHeader), 1)
	if err := f.SetCellStyle(SheetCronograma, "A1", lastCol, headerStyle); err != nil {
		return fmt.Errorf("xlsx: header style: %w", err)
	}

	for i, inst := range schedule {
		row := i + 2
		vencimento := inst.Vencimento
		if vencimento != "" {
			if curta, err := format.FormatarDataCurta(vencimento); err == nil {
				vencimento = curta
			}
		}
		values := []interface{}{
			inst.Ordem,
			clausula.NomeTipo(inst.Tipo),
			inst.Parcela(),
			vencimento,
			eventos[inst.Evento],
			inst.Valor,
			simNao(inst.Corrigida),
			string(inst.Indice),
			simNao(inst.Quitada),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetCronograma, cell, &values); err != nil {
			return fmt.Errorf("xlsx: row %d: %w", row, err)
		}
		valor := fmt.Sprintf("F%d", row)
		if err := f.SetCellStyle(SheetCronograma, valor, valor, currencyStyle); err != nil {
			return fmt.Errorf("xlsx: row %d style: %w", row, err)
		}
	}

	if len(schedule) > 0 {
		totalRow := len(schedule) + 2
		if err := f.SetCellValue(SheetCronograma, fmt.Sprintf("E%d", totalRow), "Total"); err != nil {
			return fmt.Errorf("xlsx: total: %w", err)
		}
		totalCell := fmt.Sprintf("F%d", totalRow)
		if err := f.SetCellFormula(SheetCronograma, totalCell, fmt.Sprintf("SUM(F2:F%d)", totalRow-1)); err != nil {
			return fmt.Errorf("xlsx: total formula: %w", err)
		}
		if err := f.SetCellStyle(SheetCronograma, totalCell, totalCell, currencyStyle); err != nil {
			return fmt.Errorf("xlsx: total style: %w", err)
		}
	}
	return nil
}

func writeConciliacao(f *excelize.File, r conciliacao.Result, headerStyle, currencyStyle int) error {
	rows := [][]interface{}{
		{"Valor de referência", r.ReferenceTotal},
		{"Total configurado", r.TotalConfigured},
		{"Diferença", r.Difference},
		{"Percentual concluído", r.PercentComplete / 100},
		{"Equilibrado", simNao(r.IsBalanced)},
	}
	for i, values := range rows {
		row := i + 1
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(SheetConciliacao, cell, &values); err != nil {
			return fmt.Errorf("xlsx: balance row %d: %w", row, err)
		}
		if err := f.SetCellStyle(SheetConciliacao, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("xlsx: balance style: %w", err)
		}
	}

	if err := f.SetCellStyle(SheetConciliacao, "B1", "B3", currencyStyle); err != nil {
		return fmt.Errorf("xlsx: balance style: %w", err)
	}
	percentStyle, err := f.NewStyle(&excelize.Style{NumFmt: 10}) // 0.00%
	if err != nil {
		return fmt.Errorf("xlsx: percent style: %w", err)
	}
	if err := f.SetCellStyle(SheetConciliacao, "B4", "B4", percentStyle); err != nil {
		return fmt.Errorf("xlsx: percent style: %w", err)
	}
	return f.SetColWidth(SheetConciliacao, "A", "A", 24)
}

func simNao(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}
