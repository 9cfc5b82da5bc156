package store

import "todo/internal/service"

// Reduce returns the state after applying a. It never modifies s or the
// slices it references. Unknown actions return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetTasks:
		s.Tasks = append([]service.Task{}, a.Tasks...)
	case SetFilter:
		s.Filter = a.Filter
	case SetUser:
		s.User = a.User
	case SetSession:
		s.Session = a.Session
	case SetLoading:
		s.Loading = a.Loading
	case RequestStarted:
		s.inflight++
		s.Loading = true
	case RequestFinished:
		if s.inflight > 0 {
			s.inflight--
		}
		s.Loading = s.inflight > 0
	case TasksFetched:
		if a.Filter == s.Filter {
			s.Tasks = append([]service.Task{}, a.Tasks...)
		}
	case TaskAdded:
		tasks := make([]service.Task, 0, len(s.Tasks)+1)
		s.Tasks = append(append(tasks, s.Tasks...), a.Task)
	case TaskRemoved:
		s.Tasks = reduceTaskRemoved(s.Tasks, a.ID)
	case TaskToggled:
		s.Tasks = mapTask(s.Tasks, a.ID, func(t *service.Task) {
			t.Completed = !t.Completed
		})
	case TaskEdited:
		s.Tasks = mapTask(s.Tasks, a.ID, func(t *service.Task) {
			t.Title = a.Title
			t.Description = a.Description
		})
	}
	return s
}

func reduceTaskRemoved(tasks []service.Task, id string) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// mapTask copies tasks, applying fn to the element whose ID matches.
func mapTask(tasks []service.Task, id string, fn func(*service.Task)) []service.Task {
	out := make([]service.Task, len(tasks))
	copy(out, tasks)
	for i := range out {
		if out[i].ID == id {
			fn(&out[i])
		}
	}
	return out
}
