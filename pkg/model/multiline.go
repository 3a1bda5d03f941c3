package model

// Transformer is a two or three winding transformer. Two winding records span
// four lines and leave the third winding and the 2-3/3-1 impedances zero.
type Transformer struct {
	From           int
	To             int
	Tertiary       int
	Circuit        string
	WindingCode    int
	ImpedanceCode  int
	AdmittanceCode int
	MagG           float64
	MagB           float64
	MeterEnd       int
	Name           string
	Status         int
	Owners         [4]int
	Fractions      [4]float64
	VectorGroup    string
	ZeroSeqCode    int

	R12         float64
	X12         float64
	SBase12     float64
	R23         float64
	X23         float64
	SBase23     float64
	R31         float64
	X31         float64
	SBase31     float64
	StarVoltage float64
	StarAngle   float64

	Windings [3]Winding
}

// ThreeWinding reports whether the record names a tertiary bus.
func (t Transformer) ThreeWinding() bool {
	return t.Tertiary != 0
}

// Winding holds one winding's ratio, ratings and tap control data.
type Winding struct {
	Ratio           float64
	NominalKV       float64
	Angle           float64
	Ratings         [12]float64
	ControlMode     int
	ControlledBus   int
	ControlledNode  int
	RMax            float64
	RMin            float64
	VMax            float64
	VMin            float64
	TapPositions    int
	ImpedanceTable  int
	LoadDropR       float64
	LoadDropX       float64
	CorrectionAngle float64
}

// TwoTerminalDc is a two-terminal DC line, three lines per record.
type TwoTerminalDc struct {
	Name                  string
	ControlMode           int
	R                     float64
	Setpoint              float64
	ScheduledVoltage      float64
	ModeSwitchVoltage     float64
	CompoundingR          float64
	MarginCurrent         float64
	Meter                 string
	MinCompoundingVoltage float64
	MaxIterations         int
	Acceleration          float64
	Rectifier             DcConverter
	Inverter              DcConverter
}

// DcConverter is one end of a two-terminal DC line.
type DcConverter struct {
	Bus            int
	Bridges        int
	AngleMax       float64
	AngleMin       float64
	R              float64
	X              float64
	BaseKV         float64
	TurnsRatio     float64
	Tap            float64
	TapMax         float64
	TapMin         float64
	TapStep        float64
	ControlledBus  int
	ControlledNode int
	FromBus        int
	ToBus          int
	CircuitID      string
	Capacitance    float64
}

// VscDc is a voltage source converter DC line, three lines per record.
type VscDc struct {
	Name        string
	ControlMode int
	R           float64
	Owners      [4]int
	Fractions   [4]float64
	Converters  [2]VscConverter
}

// VscConverter is one converter of a VSC DC line.
type VscConverter struct {
	Bus               int
	Type              int
	Mode              int
	DCSetpoint        float64
	ACSetpoint        float64
	ALoss             float64
	BLoss             float64
	MinLoss           float64
	SMax              float64
	IMax              float64
	PowerWeight       float64
	QMax              float64
	QMin              float64
	RegulatedBus      int
	RegulatedNode     int
	RegulationPercent float64
}

// ImpedanceCorrection is one transformer impedance correction table.
type ImpedanceCorrection struct {
	Table   int
	Entries []CorrectionPoint
}

// CorrectionPoint scales a transformer impedance at one tap ratio or angle.
// Legacy tables carry real factors only.
type CorrectionPoint struct {
	Tap  float64
	Real float64
	Imag float64
}

// MultiTerminalDc is a multi-terminal DC line. Its first line declares how many
// converter, DC bus and DC link lines follow.
type MultiTerminalDc struct {
	Name                string
	ControlMode         int
	VoltageConverter    int
	ModeSwitchVoltage   float64
	AltVoltageConverter int
	Converters          []MtdcConverter
	Buses               []MtdcBus
	Links               []MtdcLink
}

// MtdcConverter is an AC/DC converter of a multi-terminal DC line.
type MtdcConverter struct {
	Bus             int
	Bridges         int
	AngleMax        float64
	AngleMin        float64
	R               float64
	X               float64
	BaseKV          float64
	TurnsRatio      float64
	Tap             float64
	TapMax          float64
	TapMin          float64
	TapStep         float64
	Setpoint        float64
	ParticipationPF float64
	Margin          float64
	Code            int
}

// MtdcBus is a DC bus of a multi-terminal DC line.
type MtdcBus struct {
	Number    int
	ACBus     int
	Area      int
	Zone      int
	Name      string
	SecondBus int
	GroundR   float64
	Owner     int
}

// MtdcLink is a DC link between two DC buses.
type MtdcLink struct {
	From     int
	To       int
	Circuit  string
	MeterEnd int
	R        float64
	L        float64
}
