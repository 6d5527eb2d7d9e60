package pos

const (
	TopicTransactionCompleted = "pos.transaction.completed"
)

// Partition key = transaction_id, supaya event 1 transaksi maintain urutan.
func PartitionKey(transactionID string) []byte { return []byte(transactionID) }
