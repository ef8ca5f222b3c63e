// Package store is the simulation store: typed scalar tables, function-block
// instance state, and array storage, all addressed by name. It is the one
// piece of state shared between scans and the external UI; the core never
// mutates it except while a scan is running.
package store

// Store holds every typed table the runtime needs. Reading a name absent
// from its table yields the Go zero value, which is exactly the type
// default the PLC error model calls for — there is no separate "not found"
// path to wire up.
type Store struct {
	Bools        map[string]bool
	Ints         map[string]int64
	Reals        map[string]float64
	Times        map[string]int64
	Dates        map[string]int64
	TimeOfDays   map[string]int64
	DateAndTimes map[string]int64
	Strings      map[string]string

	Timers        map[string]*TimerState
	Counters      map[string]*CounterState
	EdgeDetectors map[string]*EdgeDetectorState
	Bistables     map[string]*BistableState
	Arrays        map[string]*ArrayStore

	// ScanTime is the configured scan duration in milliseconds, added to the
	// clock and to every running timer once per scan.
	ScanTime int64
	// Clock is the simulated wall clock, advanced by ScanTime at the start
	// of every scan.
	Clock int64
}

// New creates an empty Store with the given scan time in milliseconds.
func New(scanTimeMs int64) *Store {
	s := &Store{ScanTime: scanTimeMs}
	s.ClearAll()
	s.ScanTime = scanTimeMs
	return s
}

// ClearAll resets every table, as if the simulator had just been created.
func (s *Store) ClearAll() {
	s.Bools = map[string]bool{}
	s.Ints = map[string]int64{}
	s.Reals = map[string]float64{}
	s.Times = map[string]int64{}
	s.Dates = map[string]int64{}
	s.TimeOfDays = map[string]int64{}
	s.DateAndTimes = map[string]int64{}
	s.Strings = map[string]string{}
	s.Timers = map[string]*TimerState{}
	s.Counters = map[string]*CounterState{}
	s.EdgeDetectors = map[string]*EdgeDetectorState{}
	s.Bistables = map[string]*BistableState{}
	s.Arrays = map[string]*ArrayStore{}
	s.Clock = 0
}

func (s *Store) GetBool(name string) bool     { return s.Bools[name] }
func (s *Store) SetBool(name string, v bool)  { s.Bools[name] = v }
func (s *Store) GetInt(name string) int64     { return s.Ints[name] }
func (s *Store) SetInt(name string, v int64)  { s.Ints[name] = v }
func (s *Store) GetReal(name string) float64  { return s.Reals[name] }
func (s *Store) SetReal(name string, v float64) { s.Reals[name] = v }
func (s *Store) GetTime(name string) int64    { return s.Times[name] }
func (s *Store) SetTime(name string, v int64) { s.Times[name] = v }
func (s *Store) GetDate(name string) int64    { return s.Dates[name] }
func (s *Store) SetDate(name string, v int64) { s.Dates[name] = v }
func (s *Store) GetTimeOfDay(name string) int64    { return s.TimeOfDays[name] }
func (s *Store) SetTimeOfDay(name string, v int64) { s.TimeOfDays[name] = v }
func (s *Store) GetDateAndTime(name string) int64    { return s.DateAndTimes[name] }
func (s *Store) SetDateAndTime(name string, v int64) { s.DateAndTimes[name] = v }
func (s *Store) GetString(name string) string    { return s.Strings[name] }
func (s *Store) SetString(name string, v string) { s.Strings[name] = v }
