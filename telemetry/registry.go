package telemetry

import "strconv"

// FieldAccessor extracts the string rendering of one event field. The
// second return reports presence: nullable fields yield ("", false) when
// absent, so callers can distinguish an empty value from a missing one.
type FieldAccessor func(Event) (string, bool)

type placeholderMapping struct {
	name string
	get  FieldAccessor
}

// placeholderTable maps the fixed placeholder vocabulary to event fields.
// The table is additive-only: new placeholders may be appended, existing
// entries must never change meaning, so older forms configurations keep
// working against newer plugin builds.
var placeholderTable = []placeholderMapping{
	{"SYNC_TYPE", stringField(func(e Event) string { return e.SyncType })},
	{"SYNC_TIME", int64Field(func(e Event) int64 { return e.SyncTime })},
	{"SYNC_DURATION", int64Field(func(e Event) int64 { return e.TotalDurationMillis })},
	{"IDE_DURATION", int64Field(func(e Event) int64 { return e.IDEDurationMillis })},
	{"GRADLE_DURATION", int64Field(func(e Event) int64 { return e.GradleDurationMillis })},
	{"PROJECT_ID", stringField(func(e Event) string { return e.ProjectID })},
	{"MACHINE_ID", stringField(func(e Event) string { return e.MachineID })},
	{"SESSION_ID", stringField(func(e Event) string { return e.SessionID })},
	{"PLUGIN_VERSION", stringField(func(e Event) string { return e.PluginVersion })},
	{"IDE_VERSION", stringField(func(e Event) string { return e.IDEVersion })},
	{"GRADLE_VERSION", stringField(func(e Event) string { return e.GradleVersion })},
	{"JAVA_VERSION", stringField(func(e Event) string { return e.JavaVersion })},
	{"KOTLIN_VERSION", optionalField(func(e Event) *string { return e.KotlinVersion })},
	{"ERROR_MESSAGE", optionalField(func(e Event) *string { return e.ErrorMessage })},
	{"OS_NAME", stringField(func(e Event) string { return e.OSName })},
	{"OS_ARCH", stringField(func(e Event) string { return e.OSArch })},
	{"CPU_NAME", optionalField(func(e Event) *string { return e.CPUName })},
	{"CPU_CORES", int64Field(func(e Event) int64 { return e.CPUCores })},
	{"MAX_MEMORY", int64Field(func(e Event) int64 { return e.MaxMemoryMB })},
	{"MODULE_COUNT", int64Field(func(e Event) int64 { return e.ModuleCount })},
	{"TASK_COUNT", int64Field(func(e Event) int64 { return e.TaskCount })},
	{"OFFLINE_MODE", boolField(func(e Event) bool { return e.OfflineMode })},
	{"PARALLEL_BUILD", boolField(func(e Event) bool { return e.ParallelBuild })},
	{"BUILD_CACHE", boolField(func(e Event) bool { return e.BuildCacheEnabled })},
}

var placeholderIndex = func() map[string]FieldAccessor {
	m := make(map[string]FieldAccessor, len(placeholderTable))
	for _, p := range placeholderTable {
		if _, exists := m[p.name]; exists {
			panic("telemetry: duplicate placeholder " + p.name)
		}
		m[p.name] = p.get
	}
	return m
}()

// AccessorFor looks up the accessor registered for a placeholder name.
// Unknown names return false — absence, not a nil accessor, signals
// "unsupported".
func AccessorFor(name string) (FieldAccessor, bool) {
	get, exists := placeholderIndex[name]
	return get, exists
}

// Placeholders returns the known placeholder names in table order.
func Placeholders() []string {
	result := make([]string, len(placeholderTable))
	for i, p := range placeholderTable {
		result[i] = p.name
	}
	return result
}

func stringField(get func(Event) string) FieldAccessor {
	return func(e Event) (string, bool) {
		return get(e), true
	}
}

func optionalField(get func(Event) *string) FieldAccessor {
	return func(e Event) (string, bool) {
		if v := get(e); v != nil {
			return *v, true
		}
		return "", false
	}
}

func int64Field(get func(Event) int64) FieldAccessor {
	return func(e Event) (string, bool) {
		return strconv.FormatInt(get(e), 10), true
	}
}

func boolField(get func(Event) bool) FieldAccessor {
	return func(e Event) (string, bool) {
		return strconv.FormatBool(get(e)), true
	}
}
