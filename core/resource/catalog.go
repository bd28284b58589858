package resource

// DefaultCatalog is the compiled-in list of default teaching resources.
// It is passed explicitly to the Seeder so tests can substitute synthetic
// catalogs. Entries are never mutated; titles are unique.
var DefaultCatalog = []CatalogEntry{
	{
		Title:       "DBMS Assignment 1",
		Subject:     "DBMS",
		Semester:    "Semester 3",
		Type:        "Assignments",
		Branch:      "COMPS",
		Description: "Assignment covering basic DBMS concepts.",
		FilePath:    "/uploads/DBMS_Assignment_1.pdf",
	},
	{
		Title:       "DBMS Module 1: Introduction",
		Subject:     "DBMS",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Introduction to Database Management Systems.",
		FilePath:    "/uploads/DBMS_Module_1.pdf",
	},
	{
		Title:       "DBMS Module 2: Entity-Relationship Model",
		Subject:     "DBMS",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Entity-Relationship Model concepts and diagrams.",
		FilePath:    "/uploads/DBMS_Module_2.pdf",
	},
	{
		Title:       "DBMS Module 3: Relational Model & Algebra",
		Subject:     "DBMS",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Relational Model and Relational Algebra operations.",
		FilePath:    "/uploads/DBMS_Module_3.pdf",
	},
	{
		Title:       "DBMS Module 4: Structured Query Language (SQL)",
		Subject:     "DBMS",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Structured Query Language fundamentals and commands.",
		FilePath:    "/uploads/DBMS_Module_4_one.pdf",
	},
	{
		Title:       "DBMS Module 5: Relational-Database Design",
		Subject:     "DBMS",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Relational Database Design principles and normalization.",
		FilePath:    "/uploads/DBMS_Module_5.pdf",
	},
	{
		Title:       "DLCOA Module 1: Computer Fundamentals",
		Subject:     "DLCOA",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Computer Fundamentals and basic concepts.",
		FilePath:    "/uploads/DLCOA_Module_1.pdf",
	},
	{
		Title:       "DLCOA Module 2: Data Representation",
		Subject:     "DLCOA",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Data Representation in digital systems.",
		FilePath:    "/uploads/DLCOA_Module_2.pdf",
	},
	{
		Title:       "DLCOA Module 3: Processor Organization & Architecture",
		Subject:     "DLCOA",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Processor Organization and Computer Architecture.",
		FilePath:    "/uploads/DLCOA_Module_3.pdf",
	},
	{
		Title:       "Data Structure Module 1: Introduction",
		Subject:     "Data Structures",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Introduction to Data Structures and algorithms.",
		FilePath:    "/uploads/DS_Module_1.pdf",
	},
	{
		Title:       "Data Structure Module 2: Stacks and Queues",
		Subject:     "Data Structures",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Stacks and Queues data structures and operations.",
		FilePath:    "/uploads/DS_Module_2.pdf",
	},
	{
		Title:       "Data Structure Module 3: Linked Lists",
		Subject:     "Data Structures",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Linked Lists implementation and operations.",
		FilePath:    "/uploads/DS_Module_3.pdf",
	},
	{
		Title:       "Data Structure Module 4: Trees",
		Subject:     "Data Structures",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Trees data structure and traversal algorithms.",
		FilePath:    "/uploads/DS_Module_4.pdf",
	},
	{
		Title:       "Data Structure Module 5: Graphs",
		Subject:     "Data Structures",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Graphs data structure and algorithms.",
		FilePath:    "/uploads/DS_Module_5.pdf",
	},
	{
		Title:       "Data Structure Module 6: Searching Techniques",
		Subject:     "Data Structures",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Searching techniques and algorithms.",
		FilePath:    "/uploads/DS_Module_6.pdf",
	},
	{
		Title:       "Maths Module 1: Laplace Transformation",
		Subject:     "MATHS",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Laplace Transformation concepts and applications.",
		FilePath:    "/uploads/Maths_Module_1.pdf",
	},
	{
		Title:       "Maths Module 2: Inverse Laplace Transform",
		Subject:     "MATHS",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Inverse Laplace Transform methods.",
		FilePath:    "/uploads/Maths_Module_2.pdf",
	},
	{
		Title:       "Maths Module 3: Fourier Series & Fourier Transform",
		Subject:     "MATHS",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Fourier Series and Fourier Transform concepts.",
		FilePath:    "/uploads/Maths_Module_3.pdf",
	},
	{
		Title:       "Maths Module 4: Complex Variables",
		Subject:     "MATHS",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Complex Variables and functions.",
		FilePath:    "/uploads/Maths_Module_4.pdf",
	},
	{
		Title:       "Maths Module 5: Statistical Techniques",
		Subject:     "MATHS",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Statistical Techniques and methods.",
		FilePath:    "/uploads/Maths_Module_5.pdf",
	},
	{
		Title:       "Maths Module 6: Probability",
		Subject:     "MATHS",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Probability concepts and distributions.",
		FilePath:    "/uploads/Maths_Module_6.pdf",
	},
	{
		Title:       "DSGT Module 1: Logic and Proofs",
		Subject:     "DSGT",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Logic and Proofs in Discrete Structures.",
		FilePath:    "/uploads/DSGT_Module_1.pdf",
	},
	{
		Title:       "DSGT Module 2: Relations & Functions",
		Subject:     "DSGT",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Relations and Functions concepts.",
		FilePath:    "/uploads/DSGT_Module_2.pdf",
	},
	{
		Title:       "DSGT Module 3: Posets and Lattice",
		Subject:     "DSGT",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Posets and Lattice structures.",
		FilePath:    "/uploads/DSGT_Module_3.pdf",
	},
	{
		Title:       "DSGT Module 4: Counting",
		Subject:     "DSGT",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Counting principles and techniques.",
		FilePath:    "/uploads/DSGT_Module_4.pdf",
	},
	{
		Title:       "DSGT Module 6: Graph Theory",
		Subject:     "DSGT",
		Semester:    "Semester 3",
		Type:        "Notes",
		Branch:      "COMPS",
		Description: "Graph Theory concepts and applications.",
		FilePath:    "/uploads/DSGT_Module_6.pdf",
	},
}
