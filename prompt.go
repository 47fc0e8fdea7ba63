package main

import "fmt"

// The JSON skeleton doubles as the output contract: the model is told to
// reproduce exactly this structure, and the presenter treats every field as
// optional anyway.
const promptTemplate = `Agisci come un esperto analista di dati, consulente strategico e specialista di sentiment analysis.
Analizza attentamente i seguenti feedback dei clienti e restituisci un output ESCLUSIVAMENTE in formato JSON valido.

Struttura JSON richiesta (rispetta esattamente questa struttura):
{
  "sentiment_score": 75,
  "sentiment_label": "Positivo/Neutrale/Negativo",
  "numero_recensioni_analizzate": %d,
  "punti_critici": [
    {"problema": "descrizione problema", "frequenza": "alta/media/bassa", "impatto": "alto/medio/basso"},
    {"problema": "descrizione problema", "frequenza": "alta/media/bassa", "impatto": "alto/medio/basso"}
  ],
  "vantaggi_competitivi": [
    {"vantaggio": "descrizione pregio", "menzioni": "numero stimato di menzioni"},
    {"vantaggio": "descrizione pregio", "menzioni": "numero stimato di menzioni"}
  ],
  "temi_ricorrenti": ["tema 1", "tema 2", "tema 3"],
  "consiglio_ingegneristico": "descrizione tecnica dettagliata per migliorare il prodotto",
  "strategia_marketing": "strategia comunicativa basata sui dati per migliorare la percezione del cliente",
  "priorita_intervento": ["azione prioritaria 1", "azione prioritaria 2", "azione prioritaria 3"]
}

FEEDBACK DA ANALIZZARE:
%s

Rispondi SOLO con il JSON, senza testo aggiuntivo prima o dopo.`

// BuildPrompt renders the analysis prompt. batchSize pre-fills the
// expected review count in the skeleton so the model echoes it back.
func BuildPrompt(reviews string, batchSize int) string {
	return fmt.Sprintf(promptTemplate, batchSize, reviews)
}
