package model

type Meeting struct {
	Day      string `json:"day"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Contacts struct {
	Leader  Contact `json:"leader"`
	Advisor Contact `json:"advisor"`
}

// Club 社团目录数据，启动时从 fixture 读入，只读
type Club struct {
	ID               string   `json:"id"`
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"shortDescription"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	IsOpen           bool     `json:"isOpen"`
	Meeting          Meeting  `json:"meeting"`
	Contacts         Contacts `json:"contacts"`
}
