package guide

import (
	"fmt"
	"strings"
)

type fieldKind int

const (
	fieldComputing fieldKind = iota
	fieldElectrical
	fieldMechanical
	fieldCivil
	fieldChemical
	fieldOther
)

// classifyField maps free-text field names ("⚡ Electrical & Electronics") to a catalogue key.
func classifyField(field string) fieldKind {
	f := strings.ToLower(field)
	switch {
	case f == "":
		return fieldComputing
	case strings.Contains(f, "comput"), strings.Contains(f, "software"):
		return fieldComputing
	case strings.Contains(f, "electr"):
		return fieldElectrical
	case strings.Contains(f, "mechanic"), strings.Contains(f, "manufactur"):
		return fieldMechanical
	case strings.Contains(f, "civil"), strings.Contains(f, "infrastructure"):
		return fieldCivil
	case strings.Contains(f, "chemic"), strings.Contains(f, "material"):
		return fieldChemical
	}
	return fieldOther
}

func fallbackComponents(field string) []Component {
	switch classifyField(field) {
	case fieldElectrical:
		return []Component{
			{Name: "Microcontroller", Purpose: "Central processing unit", Specs: "Arduino Uno, Raspberry Pi, or ESP32"},
			{Name: "Sensors", Purpose: "Data collection and monitoring", Specs: "Temperature, humidity, or motion sensors"},
			{Name: "Power Supply", Purpose: "System power management", Specs: "5V/3.3V regulated power supply"},
		}
	case fieldMechanical:
		return []Component{
			{Name: "Mechanical Components", Purpose: "Physical system parts", Specs: "Gears, motors, or actuators"},
			{Name: "Control System", Purpose: "System automation", Specs: "PLC or microcontroller-based control"},
			{Name: "Measurement Tools", Purpose: "Precision measurement", Specs: "Calipers, gauges, or sensors"},
		}
	}
	return []Component{
		{Name: "Development Environment", Purpose: "IDE and development tools", Specs: "Visual Studio Code, Python 3.9+, Git"},
		{Name: "Libraries and Frameworks", Purpose: "Core software libraries", Specs: "Based on project requirements"},
		{Name: "Database System", Purpose: "Data storage and management", Specs: "SQLite, PostgreSQL, or MongoDB"},
	}
}

func fallbackFrameworks(field string) []string {
	switch classifyField(field) {
	case fieldComputing:
		return []string{"Python", "JavaScript", "React", "Node.js", "SQL"}
	case fieldElectrical:
		return []string{"Arduino IDE", "KiCad", "MATLAB", "LabVIEW", "Altium Designer"}
	case fieldMechanical:
		return []string{"SolidWorks", "AutoCAD", "MATLAB", "LabVIEW", "Python"}
	case fieldCivil:
		return []string{"AutoCAD", "STAAD Pro", "ETABS", "Python", "MATLAB"}
	case fieldChemical:
		return []string{"MATLAB", "Aspen Plus", "ChemCAD", "Python", "R"}
	}
	return []string{"Python", "MATLAB", "Documentation Tools"}
}

var fallbackIdeaCatalogue = map[fieldKind][]Idea{
	fieldComputing: {
		{Title: "AI Chatbot with RAG", Description: "An assistant that answers domain questions from a document index using retrieval augmented generation.", Difficulty: "Intermediate", Category: "FYP", KeyTechnologies: []string{"Python", "Vector DB", "LLM API"}, WhyTrending: "Retrieval systems are in high industry demand"},
		{Title: "Real-time Stock Price Predictor", Description: "A model that forecasts prices from historical data and news sentiment.", Difficulty: "Advanced", Category: "FYP", KeyTechnologies: []string{"Python", "TensorFlow", "APIs"}, WhyTrending: "FinTech and ML integration keeps growing"},
		{Title: "Smart Home Automation App", Description: "A mobile app that controls IoT devices with voice commands and schedules.", Difficulty: "Intermediate", Category: "Semester Project", KeyTechnologies: []string{"React Native", "IoT", "Firebase"}, WhyTrending: "The smart home market is expanding quickly"},
		{Title: "Plant Disease Detector", Description: "A mobile app that identifies crop diseases from leaf photos with an on-device model.", Difficulty: "Advanced", Category: "FYP", KeyTechnologies: []string{"TensorFlow Lite", "Flutter", "Python"}, WhyTrending: "Precision agriculture is adopting computer vision"},
		{Title: "Campus Event Platform", Description: "A web platform for clubs to publish events and manage registrations.", Difficulty: "Beginner", Category: "Semester Project", KeyTechnologies: []string{"React", "Node.js", "PostgreSQL"}, WhyTrending: "Full-stack portfolios are valued by recruiters"},
		{Title: "Privacy-first Expense Tracker", Description: "An offline-first budgeting app that syncs encrypted data between devices.", Difficulty: "Intermediate", Category: "Semester Project", KeyTechnologies: []string{"Kotlin", "SQLite", "Encryption"}, WhyTrending: "Data privacy is a growing user concern"},
	},
	fieldElectrical: {
		{Title: "Solar Panel Monitoring System", Description: "An IoT system that tracks panel efficiency and environmental conditions.", Difficulty: "Intermediate", Category: "FYP", KeyTechnologies: []string{"Arduino", "Sensors", "IoT"}, WhyTrending: "Renewable energy is a worldwide focus"},
		{Title: "Smart Grid Energy Management", Description: "A system that balances energy distribution and monitors consumption in real time.", Difficulty: "Advanced", Category: "FYP", KeyTechnologies: []string{"Microcontrollers", "Power Electronics", "Communication"}, WhyTrending: "Grid modernisation is a priority for utilities"},
		{Title: "Wireless Phone Charging Pad", Description: "An efficient inductive charger for mobile devices.", Difficulty: "Beginner", Category: "Semester Project", KeyTechnologies: []string{"Coils", "Power Electronics", "PCB"}, WhyTrending: "Wireless charging is standard in modern phones"},
		{Title: "Smart Energy Meter", Description: "A WiFi energy meter that logs household consumption and flags spikes.", Difficulty: "Intermediate", Category: "FYP", KeyTechnologies: []string{"ESP32", "Current Sensors", "MQTT"}, WhyTrending: "Energy monitoring helps cut rising power bills"},
		{Title: "Line Following Robot", Description: "A robot that tracks a line with IR sensors and PID motor control.", Difficulty: "Beginner", Category: "Semester Project", KeyTechnologies: []string{"Arduino", "IR Sensors", "Motor Drivers"}, WhyTrending: "Robotics competitions remain popular with students"},
		{Title: "EV Battery Management System", Description: "A BMS that balances cells and monitors temperature and state of charge.", Difficulty: "Advanced", Category: "FYP", KeyTechnologies: []string{"STM32", "Battery Monitoring ICs", "CAN Bus"}, WhyTrending: "Electric vehicle adoption is accelerating"},
	},
	fieldMechanical: {
		{Title: "Robotic Arm with Computer Vision", Description: "A desktop arm that sorts objects detected by a camera.", Difficulty: "Advanced", Category: "FYP", KeyTechnologies: []string{"Servo Motors", "OpenCV", "Arduino"}, WhyTrending: "Automation is expanding in small factories"},
		{Title: "Solar Powered Water Pump", Description: "A pump driven by solar panels with flow monitoring for small farms.", Difficulty: "Intermediate", Category: "FYP", KeyTechnologies: []string{"Solar Panels", "DC Motors", "Sensors"}, WhyTrending: "Off-grid irrigation is in demand"},
		{Title: "3D Printed Prosthetic Hand", Description: "A low-cost prosthetic hand with tendon-driven fingers.", Difficulty: "Intermediate", Category: "FYP", KeyTechnologies: []string{"CAD", "3D Printing", "Servo Motors"}, WhyTrending: "Affordable assistive devices are a research focus"},
		{Title: "Automated Guided Vehicle", Description: "A small AGV that follows floor markers to move parts between stations.", Difficulty: "Advanced", Category: "FYP", KeyTechnologies: []string{"Stepper Motors", "Lidar", "ROS"}, WhyTrending: "Warehouse automation keeps growing"},
		{Title: "Heat Exchanger Test Rig", Description: "A bench rig that measures heat exchanger efficiency at different flow rates.", Difficulty: "Intermediate", Category: "Semester Project", KeyTechnologies: []string{"Thermocouples", "Data Acquisition", "MATLAB"}, WhyTrending: "Thermal efficiency matters for energy savings"},
		{Title: "Wind Turbine Blade Optimiser", Description: "A CFD study and prototype of small wind turbine blades.", Difficulty: "Advanced", Category: "FYP", KeyTechnologies: []string{"ANSYS", "SolidWorks", "3D Printing"}, WhyTrending: "Small-scale renewables are spreading"},
	},
	fieldCivil: {
		{Title: "Structural Health Monitoring", Description: "A sensor network that tracks strain and vibration on a bridge model.", Difficulty: "Advanced", Category: "FYP", KeyTechnologies: []string{"Strain Gauges", "Accelerometers", "IoT"}, WhyTrending: "Ageing infrastructure needs continuous monitoring"},
		{Title: "Smart Traffic Signal System", Description: "Adaptive signal timing from vehicle counts at an intersection.", Difficulty: "Intermediate", Category: "FYP", KeyTechnologies: []string{"Computer Vision", "Arduino", "Simulation"}, WhyTrending: "Cities are investing in congestion reduction"},
		{Title: "Green Building Energy Model", Description: "An energy simulation comparing insulation and glazing options.", Difficulty: "Intermediate", Category: "Semester Project", KeyTechnologies: []string{"EnergyPlus", "Revit", "Excel"}, WhyTrending: "Sustainable construction standards are tightening"},
		{Title: "Flood Early Warning System", Description: "River level sensors that send alerts when thresholds are crossed.", Difficulty: "Intermediate", Category: "FYP", KeyTechnologies: []string{"Ultrasonic Sensors", "GSM", "Solar Power"}, WhyTrending: "Climate change is raising flood risk"},
		{Title: "Recycled Aggregate Concrete Study", Description: "Tests of concrete strength with recycled aggregate mixes.", Difficulty: "Beginner", Category: "Semester Project", KeyTechnologies: []string{"Lab Testing", "Mix Design", "Statistics"}, WhyTrending: "Construction waste reuse is a sustainability goal"},
		{Title: "Road Pothole Detector", Description: "A dashcam model that maps potholes for maintenance crews.", Difficulty: "Advanced", Category: "FYP", KeyTechnologies: []string{"YOLO", "GPS", "Python"}, WhyTrending: "Municipal asset management is going digital"},
	},
	fieldChemical: {
		{Title: "Biodiesel from Waste Cooking Oil", Description: "A batch process that converts used oil into biodiesel and tests its quality.", Difficulty: "Intermediate", Category: "FYP", KeyTechnologies: []string{"Transesterification", "Titration", "Process Design"}, WhyTrending: "Waste-to-energy is a circular economy priority"},
		{Title: "Water Purification Membrane", Description: "A low-cost membrane filter for removing heavy metals.", Difficulty: "Advanced", Category: "FYP", KeyTechnologies: []string{"Membrane Synthesis", "Spectroscopy", "Adsorption"}, WhyTrending: "Clean water access remains a global challenge"},
		{Title: "Bioplastic from Starch", Description: "Biodegradable film made from starch with tested tensile strength.", Difficulty: "Beginner", Category: "Semester Project", KeyTechnologies: []string{"Polymer Chemistry", "Material Testing", "Plasticisers"}, WhyTrending: "Plastic bans are driving bioplastic demand"},
		{Title: "Distillation Column Simulation", Description: "A steady-state simulation and optimisation of a binary distillation column.", Difficulty: "Intermediate", Category: "Semester Project", KeyTechnologies: []string{"Aspen Plus", "MATLAB", "Thermodynamics"}, WhyTrending: "Process simulation skills are expected in industry"},
		{Title: "CO2 Capture with Amines", Description: "A lab-scale absorber measuring CO2 uptake of amine solutions.", Difficulty: "Advanced", Category: "FYP", KeyTechnologies: []string{"Gas Absorption", "Sensors", "Process Control"}, WhyTrending: "Carbon capture is central to decarbonisation"},
		{Title: "Smart pH Monitoring for Aquaculture", Description: "Sensors that keep pond pH and oxygen in range and alert farmers.", Difficulty: "Intermediate", Category: "FYP", KeyTechnologies: []string{"pH Sensors", "Arduino", "IoT"}, WhyTrending: "Aquaculture is the fastest-growing food sector"},
	},
}

func fallbackIdeas(field string) []Idea {
	ideas, ok := fallbackIdeaCatalogue[classifyField(field)]
	if !ok {
		ideas = fallbackIdeaCatalogue[fieldComputing]
	}
	out := make([]Idea, len(ideas))
	copy(out, ideas)
	return out
}

var questionTemplates = []string{
	"What specific features would you like to include in your %s?",
	"Which technologies or components are you most interested in using for this %s?",
	"What would be the main use case or target audience for your %s?",
	"Do you want to focus more on the hardware side or the software side of this %s?",
	"What makes your %s different from existing solutions?",
}

// fallbackQuestion rotates through the templates as answers accumulate.
func fallbackQuestion(subject string, answered int) string {
	return fmt.Sprintf(questionTemplates[answered%len(questionTemplates)], subject)
}

func fallbackDescription(subject, field, difficulty string) string {
	return fmt.Sprintf(`## Project Overview
%[1]s is a %[3]s level project in %[2]s that builds hands-on skills through a complete implementation.

## Learning Objectives
- Understand the core concepts of %[2]s used by the project
- Practise planning, building and testing a working system
- Produce a portfolio-ready result with documentation

## Implementation Steps
### Phase 1: Planning and Setup
1. Review requirements and define the scope
2. Set up the development environment
3. Gather components and tools

### Phase 2: Core Development
1. Implement the basic functionality
2. Test each part on its own
3. Integrate the parts into one system

### Phase 3: Testing and Refinement
1. Test the complete system
2. Fix issues and tune performance
3. Document the solution

## Common Challenges
- Integration between parts: build and test in small modules
- Performance: measure first and optimise the bottlenecks
- Debugging: add logging and reproduce issues systematically
`, subject, field, strings.ToLower(difficulty))
}
