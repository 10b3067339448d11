package task

// Task is a single entry in the task file. The JSON keys are the ones the
// tracker has always written, so existing files keep loading.
type Task struct {
	Name     string `json:"nama_tugas"`
	Subject  string `json:"mata_pelajaran"`
	Deadline string `json:"deadline"`
}
