package tasks

// RegisterAllTasks returns the map of all scheduled task functions keyed by
// the names used in the scheduler configuration.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	return map[string]ScheduledTaskFunc{
		"catalog_refresh": NewCatalogRefreshTask(deps),
	}
}
