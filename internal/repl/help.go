package repl

const helpText = `Commands:
  <n> <statement>   store or replace line n
  <n>               delete line n
  RUN               run the stored program
  LIST [n[-m]]      list stored lines
  RENUM [n[,i]]     renumber, starting at n by i (default 10,10)
  DELETE <n[-m]>    delete a line or range
  AUTO [n[,i]]      auto-number new lines, starting at n by i
  EDIT <n>          print line n's text for retyping
  CONT              resume after STOP or Ctrl-Break
  NEW               clear the stored program
  FILES             list files
  LOAD/SAVE/MERGE   "name" transfer programs with the filesystem
  HELP              show this text`
