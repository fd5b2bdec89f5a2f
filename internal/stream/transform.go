package stream

import (
	"github.com/mr-tron/base58"

	"pumpScope/internal/geyser"
	"pumpScope/internal/model"
)

// buildTxBatch skips updates without logs. Vote and failed transactions are
// already excluded by the filter and are dropped again if a server sends them.
func buildTxBatch(tx *geyser.TransactionUpdate) (model.TxBatch, bool) {
	if tx == nil || len(tx.Logs) == 0 || tx.IsVote || tx.Failed {
		return model.TxBatch{}, false
	}

	signature := model.UnknownSignature
	if len(tx.Signatures) > 0 {
		signature = base58.Encode(tx.Signatures[0])
	}

	logs := make([]string, len(tx.Logs))
	copy(logs, tx.Logs)
	return model.TxBatch{
		Slot:      tx.Slot,
		Signature: signature,
		Logs:      logs,
	}, true
}
