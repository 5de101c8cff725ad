package whitelist

const (
	metricMessages      = `pm_whitelist_messages_total{decision=%q}`
	metricStorageErrors = `pm_whitelist_storage_errors_total{op=%q}`
	metricCommands      = `pm_whitelist_commands_total{command=%q,result=%q}`
)
