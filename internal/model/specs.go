package model

// Specs is the category-specific specification of a component. Each
// category has its own spec struct so rule lookups are checked at compile
// time instead of probing an untyped map. A nil Specs means the catalog
// had no structured data for the part; rules then fall back to
// name-pattern inference and report reduced confidence.
type Specs interface {
	SpecCategory() Category
}

// CPUSpecs describes a processor.
type CPUSpecs struct {
	Socket     string `json:"socket,omitempty" yaml:"socket,omitempty"`
	Generation string `json:"generation,omitempty" yaml:"generation,omitempty"`
	Cores      int    `json:"cores,omitempty" yaml:"cores,omitempty"`
	TDPWatts   int    `json:"tdp_watts,omitempty" yaml:"tdp_watts,omitempty"`
}

func (CPUSpecs) SpecCategory() Category { return CategoryCPU }

// GPUSpecs describes a graphics card.
type GPUSpecs struct {
	PowerDrawWatts int `json:"power_draw_watts,omitempty" yaml:"power_draw_watts,omitempty"`
	LengthMM       int `json:"length_mm,omitempty" yaml:"length_mm,omitempty"`
	VRAMGB         int `json:"vram_gb,omitempty" yaml:"vram_gb,omitempty"`
}

func (GPUSpecs) SpecCategory() Category { return CategoryGPU }

// MotherboardSpecs describes a motherboard.
type MotherboardSpecs struct {
	Socket            string `json:"socket,omitempty" yaml:"socket,omitempty"`
	Chipset           string `json:"chipset,omitempty" yaml:"chipset,omitempty"`
	MemoryType        string `json:"memory_type,omitempty" yaml:"memory_type,omitempty"`
	MaxMemorySpeedMHz int    `json:"max_memory_speed_mhz,omitempty" yaml:"max_memory_speed_mhz,omitempty"`
	MaxMemoryGB       int    `json:"max_memory_gb,omitempty" yaml:"max_memory_gb,omitempty"`
	FormFactor        string `json:"form_factor,omitempty" yaml:"form_factor,omitempty"`
}

func (MotherboardSpecs) SpecCategory() Category { return CategoryMotherboard }

// MemorySpecs describes a memory kit.
type MemorySpecs struct {
	Type       string `json:"type,omitempty" yaml:"type,omitempty"`
	SpeedMHz   int    `json:"speed_mhz,omitempty" yaml:"speed_mhz,omitempty"`
	CapacityGB int    `json:"capacity_gb,omitempty" yaml:"capacity_gb,omitempty"`
	Modules    int    `json:"modules,omitempty" yaml:"modules,omitempty"`
}

func (MemorySpecs) SpecCategory() Category { return CategoryMemory }

// StorageSpecs describes a storage drive.
type StorageSpecs struct {
	CapacityGB int    `json:"capacity_gb,omitempty" yaml:"capacity_gb,omitempty"`
	Interface  string `json:"interface,omitempty" yaml:"interface,omitempty"`
}

func (StorageSpecs) SpecCategory() Category { return CategoryStorage }

// CoolerSpecs describes a CPU cooler.
type CoolerSpecs struct {
	Sockets    []string `json:"sockets,omitempty" yaml:"sockets,omitempty"`
	HeightMM   int      `json:"height_mm,omitempty" yaml:"height_mm,omitempty"`
	RadiatorMM int      `json:"radiator_mm,omitempty" yaml:"radiator_mm,omitempty"`
}

func (CoolerSpecs) SpecCategory() Category { return CategoryCooler }

// PSUSpecs describes a power supply.
type PSUSpecs struct {
	Wattage    int    `json:"wattage,omitempty" yaml:"wattage,omitempty"`
	Efficiency string `json:"efficiency,omitempty" yaml:"efficiency,omitempty"`
	FormFactor string `json:"form_factor,omitempty" yaml:"form_factor,omitempty"`
}

func (PSUSpecs) SpecCategory() Category { return CategoryPSU }

// CaseSpecs describes a case and its clearances.
type CaseSpecs struct {
	MaxGPULengthMM    int      `json:"max_gpu_length_mm,omitempty" yaml:"max_gpu_length_mm,omitempty"`
	MaxCoolerHeightMM int      `json:"max_cooler_height_mm,omitempty" yaml:"max_cooler_height_mm,omitempty"`
	MaxRadiatorMM     int      `json:"max_radiator_mm,omitempty" yaml:"max_radiator_mm,omitempty"`
	FormFactors       []string `json:"form_factors,omitempty" yaml:"form_factors,omitempty"`
}

func (CaseSpecs) SpecCategory() Category { return CategoryCase }
