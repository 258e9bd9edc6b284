package ecs

// RegistryStats is a snapshot of the registry's size.
type RegistryStats struct {
	ComponentCount     int
	EntityCount        int
	IssuedCount        int
	FreeCount          int
	SystemCount        int
	EnabledSystemCount int
	PendingCommands    int
	Components         []ComponentInfo
}

// CollectStats snapshots entity, component and system counts.
func (r *Registry) CollectStats() *RegistryStats {
	return &RegistryStats{
		ComponentCount:     len(r.order),
		EntityCount:        r.entities.liveCount(),
		IssuedCount:        int(r.entities.issued),
		FreeCount:          r.entities.freed.Len(),
		SystemCount:        len(r.scheduler.order),
		EnabledSystemCount: len(r.scheduler.enabled),
		PendingCommands:    r.commands.Len(),
		Components:         r.Components(),
	}
}
