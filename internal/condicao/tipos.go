package condicao

// TipoParcela is the tipo_parcela_codigo of a condition.
type TipoParcela string

const (
	TipoEntrada       TipoParcela = "entrada"
	TipoMensalFixa    TipoParcela = "mensal_fixa"
	TipoMensalSerie   TipoParcela = "mensal_serie"
	TipoIntermediaria TipoParcela = "intermediaria"
	TipoResidual      TipoParcela = "residual"
	TipoCorretagem    TipoParcela = "corretagem"
	TipoOutro         TipoParcela = "other"
)

// TiposParcela lists every valid TipoParcela in display order.
var TiposParcela = []TipoParcela{
	TipoEntrada, TipoMensalFixa, TipoMensalSerie, TipoIntermediaria, TipoResidual, TipoCorretagem, TipoOutro,
}

// IsMensal reports whether the code belongs to the monthly bucket.
func (t TipoParcela) IsMensal() bool {
	return t == TipoMensalFixa || t == TipoMensalSerie
}

// TipoValor says whether Valor is an amount or a percentage of the reference total.
type TipoValor string

const (
	ValorFixo       TipoValor = "fixo"
	ValorPercentual TipoValor = "percentual"
)

// TiposValor lists every valid TipoValor.
var TiposValor = []TipoValor{ValorFixo, ValorPercentual}

// EventoVencimento is a milestone that triggers a due date.
type EventoVencimento string

const (
	EventoNenhum        EventoVencimento = "none"
	EventoAssinatura    EventoVencimento = "assinatura"
	EventoHabiteSe      EventoVencimento = "habite_se"
	EventoEntregaChaves EventoVencimento = "entrega_chaves"
)

// EventosVencimento lists every valid EventoVencimento.
var EventosVencimento = []EventoVencimento{EventoNenhum, EventoAssinatura, EventoHabiteSe, EventoEntregaChaves}

// IsSet reports whether the condition is tied to a milestone. The empty value
// means none.
func (e EventoVencimento) IsSet() bool {
	return e != "" && e != EventoNenhum
}

// IndiceCorrecao is the index used for monetary correction.
type IndiceCorrecao string

const (
	IndiceINCC IndiceCorrecao = "INCC"
	IndiceIPCA IndiceCorrecao = "IPCA"
	IndiceIGPM IndiceCorrecao = "IGP-M"
	IndiceCUB  IndiceCorrecao = "CUB"
)

// IndicesCorrecao lists every valid IndiceCorrecao.
var IndicesCorrecao = []IndiceCorrecao{IndiceINCC, IndiceIPCA, IndiceIGPM, IndiceCUB}

var nomesIndices = map[IndiceCorrecao]string{
	IndiceINCC: "Índice Nacional de Custo da Construção",
	IndiceIPCA: "Índice Nacional de Preços ao Consumidor Amplo",
	IndiceIGPM: "Índice Geral de Preços do Mercado",
	IndiceCUB:  "Custo Unitário Básico da construção civil",
}

// NomeCompleto returns the index's full name, or "" when unknown.
func (i IndiceCorrecao) NomeCompleto() string {
	return nomesIndices[i]
}

// FormaQuitacao is how the obligation is settled.
type FormaQuitacao string

const (
	QuitacaoDinheiro FormaQuitacao = "dinheiro"
	QuitacaoVeiculo  FormaQuitacao = "veiculo"
	QuitacaoImovel   FormaQuitacao = "imovel"
	QuitacaoOutroBem FormaQuitacao = "outro_bem"
)

// FormasQuitacao lists every valid FormaQuitacao.
var FormasQuitacao = []FormaQuitacao{QuitacaoDinheiro, QuitacaoVeiculo, QuitacaoImovel, QuitacaoOutroBem}

// IsDacao reports whether the obligation is settled with an asset. The empty
// value means cash.
func (f FormaQuitacao) IsDacao() bool {
	return f != "" && f != QuitacaoDinheiro
}

// FormaPagamento is the payment instrument for cash settlements.
type FormaPagamento string

const (
	PagamentoBoleto     FormaPagamento = "boleto"
	PagamentoTED        FormaPagamento = "ted"
	PagamentoPix        FormaPagamento = "pix"
	PagamentoCheque     FormaPagamento = "cheque"
	PagamentoNotaFiscal FormaPagamento = "nota_fiscal"
)

// FormasPagamento lists every valid FormaPagamento.
var FormasPagamento = []FormaPagamento{PagamentoBoleto, PagamentoTED, PagamentoPix, PagamentoCheque, PagamentoNotaFiscal}

var descricoesPagamento = map[FormaPagamento]string{
	PagamentoBoleto:     "por meio de boleto bancário",
	PagamentoTED:        "por meio de transferência bancária (TED)",
	PagamentoPix:        "por meio de PIX",
	PagamentoCheque:     "por meio de cheque",
	PagamentoNotaFiscal: "mediante emissão de nota fiscal",
}

// Descricao returns the adverbial phrase used in a clause, or "" when unset.
func (f FormaPagamento) Descricao() string {
	return descricoesPagamento[f]
}
