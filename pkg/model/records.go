package model

// Bus is a network node.
type Bus struct {
	Number           int
	Name             string
	BaseKV           float64
	Type             int
	Area             int
	Zone             int
	Owner            int
	VoltageMagnitude float64
	VoltageAngle     float64
	NormalVMax       float64
	NormalVMin       float64
	EmergencyVMax    float64
	EmergencyVMin    float64
}

// Load is a constant power, current or admittance load attached to a bus.
type Load struct {
	Bus           int
	ID            string
	Status        int
	Area          int
	Zone          int
	PL            float64
	QL            float64
	IP            float64
	IQ            float64
	YP            float64
	YQ            float64
	Owner         int
	Scale         int
	Interruptible int
	// Distributed generation, Modern only.
	DistGenP    float64
	DistGenQ    float64
	DistGenMode int
	LoadType    string
}

// FixedShunt is a fixed shunt admittance at a bus.
type FixedShunt struct {
	Bus    int
	ID     string
	Status int
	GL     float64
	BL     float64
}

// Generator is a machine connected at a bus.
type Generator struct {
	Bus               int
	ID                string
	PG                float64
	QG                float64
	QMax              float64
	QMin              float64
	VoltageSetpoint   float64
	RegulatedBus      int
	RegulatedNode     int
	MBase             float64
	ZR                float64
	ZX                float64
	RT                float64
	XT                float64
	TransformerTap    float64
	Status            int
	RegulationPercent float64
	PMax              float64
	PMin              float64
	BaseLoaded        int
	Owners            [4]int
	Fractions         [4]float64
	WindMode          int
	WindPowerFactor   float64
}

// Branch is a non-transformer AC line.
type Branch struct {
	From      int
	To        int
	Circuit   string
	R         float64
	X         float64
	B         float64
	Name      string
	Ratings   [12]float64
	GI        float64
	BI        float64
	GJ        float64
	BJ        float64
	Status    int
	MeterEnd  int
	Length    float64
	Owners    [4]int
	Fractions [4]float64
}

// SwitchingDevice is a breaker or switch between two buses. Modern files only.
type SwitchingDevice struct {
	From         int
	To           int
	Circuit      string
	X            float64
	Ratings      [12]float64
	Status       int
	NormalStatus int
	MeterEnd     int
	Type         int
	Name         string
}

// Area is an interchange control area.
type Area struct {
	Number     int
	SlackBus   int
	PDesired   float64
	PTolerance float64
	Name       string
}

// MultiSectionLine groups branches joined through dummy buses.
type MultiSectionLine struct {
	From       int
	To         int
	ID         string
	MeterEnd   int
	DummyBuses [9]int
}

// Zone names a loss zone.
type Zone struct {
	Number int
	Name   string
}

// InterAreaTransfer is a scheduled transfer between two areas.
type InterAreaTransfer struct {
	FromArea int
	ToArea   int
	ID       string
	Power    float64
}

// Owner names an equipment owner.
type Owner struct {
	Number int
	Name   string
}

// Facts is a FACTS device.
type Facts struct {
	Name              string
	SendingBus        int
	TerminalBus       int
	Mode              int
	PDesired          float64
	QDesired          float64
	VoltageSetpoint   float64
	ShuntMax          float64
	BridgeMax         float64
	VTMin             float64
	VTMax             float64
	VSeriesMax        float64
	IMax              float64
	LinkX             float64
	RegulationPercent float64
	Owner             int
	Set1              float64
	Set2              float64
	VoltageReference  int
	RegulatedBus      int
	RegulatedNode     int
	MasterName        string
}

// SwitchedShunt is a bus shunt made of up to eight switched blocks.
type SwitchedShunt struct {
	Bus               int
	ID                string
	ControlMode       int
	AdjustMethod      int
	Status            int
	VHigh             float64
	VLow              float64
	RegulatedBus      int
	RegulatedNode     int
	RegulationPercent float64
	RegulatingDevice  string
	InitialB          float64
	// BlockStatus is only carried by Modern files; Legacy blocks are always in service.
	BlockStatus [8]int
	Steps       [8]int
	BIncrement  [8]float64
}

// InductionMachine is an induction motor or generator.
type InductionMachine struct {
	Bus          int
	ID           string
	Status       int
	StandardCode int
	DesignCode   int
	Area         int
	Zone         int
	Owner        int
	TorqueCode   int
	BaseCode     int
	MBase        float64
	RatedKV      float64
	PowerCode    int
	PSet         float64
	Inertia      float64
	// TorqueCoefficients holds A, B, D and E.
	TorqueCoefficients [4]float64
	RA                 float64
	XA                 float64
	XM                 float64
	R1                 float64
	X1                 float64
	R2                 float64
	X2                 float64
	X3                 float64
	E1                 float64
	SE1                float64
	E2                 float64
	SE2                float64
	IA1                float64
	IA2                float64
	XAMult             float64
}
