package api

// User is a record of the remote users resource. Only ID and Name are used by
// the task list; the remaining fields are carried for the CLI's JSON output
// and for the mock server.
type User struct {
	ID       int      `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Username string   `json:"username,omitempty" yaml:"username,omitempty"`
	Email    string   `json:"email,omitempty" yaml:"email,omitempty"`
	Phone    string   `json:"phone,omitempty" yaml:"phone,omitempty"`
	Website  string   `json:"website,omitempty" yaml:"website,omitempty"`
	Address  *Address `json:"address,omitempty" yaml:"address,omitempty"`
	Company  *Company `json:"company,omitempty" yaml:"company,omitempty"`
}

// Address is the postal address attached to a User.
type Address struct {
	Street  string `json:"street" yaml:"street"`
	Suite   string `json:"suite" yaml:"suite"`
	City    string `json:"city" yaml:"city"`
	Zipcode string `json:"zipcode" yaml:"zipcode"`
	Geo     Geo    `json:"geo" yaml:"geo"`
}

// Geo holds coordinates as the API sends them, as strings.
type Geo struct {
	Lat string `json:"lat" yaml:"lat"`
	Lng string `json:"lng" yaml:"lng"`
}

// Company is the employer attached to a User.
type Company struct {
	Name        string `json:"name" yaml:"name"`
	CatchPhrase string `json:"catchPhrase" yaml:"catchPhrase"`
	BS          string `json:"bs" yaml:"bs"`
}

// Task is a record of the remote todos resource.
type Task struct {
	UserID    int    `json:"userId" yaml:"userId"`
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Completed bool   `json:"completed" yaml:"completed"`
}
